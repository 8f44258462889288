package queue

import (
	"context"
	"sort"
	"time"

	domainRequest "grants-approval-engine/internal/domain/request"
	"grants-approval-engine/internal/usecase/workflow"
)

type Usecase struct{ repo domainRequest.Repository }

func NewUsecase(r domainRequest.Repository) *Usecase { return &Usecase{repo: r} }

// ListQueue returns every pending request awaiting the given role, oldest
// submission first, with days-in-queue derived from the current step's
// entry time. Bucketing the age is the caller's presentation concern.
func (u *Usecase) ListQueue(ctx context.Context, role string) ([]workflow.RequestSnapshot, error) {
	reqs, err := u.repo.ListPendingByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]workflow.RequestSnapshot, 0, len(reqs))
	for i := range reqs {
		out = append(out, *workflow.SnapshotOf(&reqs[i], now))
	}
	return out, nil
}

// Summarize aggregates the same listing ListQueue serves — never a
// separately maintained counter — so the numbers cannot drift apart.
func (u *Usecase) Summarize(ctx context.Context, role string, thresholds []int) (*Summary, error) {
	items, err := u.ListQueue(ctx, role)
	if err != nil {
		return nil, err
	}

	ts := append([]int(nil), thresholds...)
	sort.Sort(sort.Reverse(sort.IntSlice(ts)))

	s := &Summary{Role: role, Total: len(items), Buckets: make(map[int]int, len(ts))}
	for _, t := range ts {
		s.Buckets[t] = 0
	}
	for _, it := range items {
		if it.DaysInQueue == nil {
			continue
		}
		for _, t := range ts {
			if *it.DaysInQueue >= t {
				s.Buckets[t]++
				break
			}
		}
	}
	return s, nil
}
