package notifier

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Subject convention: approvals.<event_type>
const subjectPrefix = "approvals."

// NATSPublisher publishes lifecycle events to a NATS subject per event type.
type NATSPublisher struct {
	nc  *nats.Conn
	log zerolog.Logger
}

func OpenNATS(url string, log zerolog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("approval-engine"))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{nc: nc, log: log}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
	}
}

func (p *NATSPublisher) Publish(_ context.Context, ev Event) {
	if p.nc == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", ev.EventType).Msg("notifier: marshal event failed")
		return
	}
	subject := subjectPrefix + ev.EventType
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("request_id", ev.RequestID).
			Msg("notifier: publish failed (non-fatal)")
		return
	}
	p.log.Debug().
		Str("subject", subject).
		Str("request_id", ev.RequestID).
		Msg("notifier: event published")
}
