package chaindef

import (
	"context"
	"errors"
	"testing"

	domainChain "grants-approval-engine/internal/domain/chain"
	"grants-approval-engine/internal/testutil/chainmock"
)

func TestCreate_Valid(t *testing.T) {
	var created *domainChain.Definition
	repo := &chainmock.Repo{
		CreateFn: func(ctx context.Context, d *domainChain.Definition) error {
			created = d
			return nil
		},
	}
	u := NewUsecase(repo)

	dto, err := u.Create(context.Background(), CreateChainInput{
		EntityType: "fund_request",
		Priority:   10,
		Steps: []StepInput{
			// intentionally out of order; usecase sorts before persisting
			{StepOrder: 2, StepName: "GM Sign-off", ApproverRole: "gm"},
			{StepOrder: 1, StepName: "Finance Review", ApproverRole: "finance"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil {
		t.Fatal("repo.Create not called")
	}
	if created.Steps[0].StepOrder != 1 || created.Steps[1].StepOrder != 2 {
		t.Fatalf("steps not sorted: %+v", created.Steps)
	}
	if !created.Active {
		t.Fatal("new chain must be active")
	}
	if len(dto.ChainID) != 32 {
		t.Fatalf("chain id = %q, want 32-char hex", dto.ChainID)
	}
	if dto.Steps[0].ApproverRole != "finance" {
		t.Fatalf("dto steps: %+v", dto.Steps)
	}
}

func TestCreate_InvalidSteps(t *testing.T) {
	u := NewUsecase(&chainmock.Repo{})

	tests := []struct {
		name  string
		steps []StepInput
		want  error
	}{
		{"empty", nil, domainChain.ErrNoStepsDefined},
		{"gap", []StepInput{{StepOrder: 1}, {StepOrder: 3}}, domainChain.ErrInvalidChain},
		{"duplicate", []StepInput{{StepOrder: 1}, {StepOrder: 1}}, domainChain.ErrInvalidChain},
		{"zero based", []StepInput{{StepOrder: 0}}, domainChain.ErrInvalidChain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Create(context.Background(), CreateChainInput{EntityType: "x", Steps: tt.steps})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreate_InvertedBracket(t *testing.T) {
	repo := &chainmock.Repo{
		CreateFn: func(ctx context.Context, d *domainChain.Definition) error {
			t.Fatal("inverted bracket must never reach the repository")
			return nil
		},
	}
	lo, hi := 100.0, 10.0
	_, err := NewUsecase(repo).Create(context.Background(), CreateChainInput{
		EntityType: "fund_request",
		MinAmount:  &lo,
		MaxAmount:  &hi,
		Steps:      []StepInput{{StepOrder: 1, StepName: "Finance Review", ApproverRole: "finance"}},
	})
	if !errors.Is(err, domainChain.ErrInvalidBracket) {
		t.Fatalf("err = %v, want ErrInvalidBracket", err)
	}
}

func TestList(t *testing.T) {
	repo := &chainmock.Repo{
		ListActiveByEntityTypeFn: func(ctx context.Context, entityType string) ([]domainChain.Definition, error) {
			return []domainChain.Definition{
				{ChainID: "c1", EntityType: entityType, Priority: 10, Active: true,
					Steps: []domainChain.Step{{StepOrder: 1, StepName: "Finance Review", ApproverRole: "finance"}}},
				{ChainID: "c2", EntityType: entityType, Priority: 20, Active: true},
			}, nil
		},
	}
	out, err := NewUsecase(repo).List(context.Background(), "contract")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[0].ChainID != "c1" || len(out[0].Steps) != 1 {
		t.Fatalf("list: %+v", out)
	}
}
