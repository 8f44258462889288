package chaindef

import (
	"context"
	"sort"

	domainChain "grants-approval-engine/internal/domain/chain"
	"grants-approval-engine/pkg/id"
)

type Usecase struct{ repo domainChain.Repository }

func NewUsecase(r domainChain.Repository) *Usecase { return &Usecase{repo: r} }

// Create provisions a chain definition. Definitions are immutable once
// created; requests reference them by id for their whole lifetime, so
// correcting a chain means provisioning a replacement and deactivating
// the old one out-of-band.
func (u *Usecase) Create(ctx context.Context, in CreateChainInput) (*ChainDTO, error) {
	def := &domainChain.Definition{
		ChainID:    id.NewID32(),
		EntityType: in.EntityType,
		MinAmount:  in.MinAmount,
		MaxAmount:  in.MaxAmount,
		Priority:   in.Priority,
		Active:     true,
	}
	for _, s := range in.Steps {
		def.Steps = append(def.Steps, domainChain.Step{
			StepOrder:    s.StepOrder,
			StepName:     s.StepName,
			ApproverRole: s.ApproverRole,
		})
	}
	if err := def.ValidateBracket(); err != nil {
		return nil, err
	}
	if err := def.ValidateSteps(); err != nil {
		return nil, err
	}
	sort.Slice(def.Steps, func(i, j int) bool { return def.Steps[i].StepOrder < def.Steps[j].StepOrder })

	if err := u.repo.Create(ctx, def); err != nil {
		return nil, err
	}
	return toDTO(def), nil
}

// List returns the active definitions for an entity type, priority order.
func (u *Usecase) List(ctx context.Context, entityType string) ([]ChainDTO, error) {
	defs, err := u.repo.ListActiveByEntityType(ctx, entityType)
	if err != nil {
		return nil, err
	}
	out := make([]ChainDTO, 0, len(defs))
	for i := range defs {
		out = append(out, *toDTO(&defs[i]))
	}
	return out, nil
}

func toDTO(d *domainChain.Definition) *ChainDTO {
	dto := &ChainDTO{
		ChainID:    d.ChainID,
		EntityType: d.EntityType,
		MinAmount:  d.MinAmount,
		MaxAmount:  d.MaxAmount,
		Priority:   d.Priority,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
	}
	for _, s := range d.Steps {
		dto.Steps = append(dto.Steps, StepDTO{StepOrder: s.StepOrder, StepName: s.StepName, ApproverRole: s.ApproverRole})
	}
	return dto
}
