package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	requestDomain "grants-approval-engine/internal/domain/request"

	"gorm.io/gorm"
)

func makeRequest(requestID, role string, submitted time.Time) *requestDomain.Request {
	return &requestDomain.Request{
		RequestID:     requestID,
		EntityType:    "budget_line",
		EntityID:      "BL-1",
		ChainID:       1,
		ChainDefID:    strings.Repeat("c", 32),
		Status:        requestDomain.StatusPending,
		CurrentStep:   1,
		StepName:      role + " review",
		StepRole:      role,
		StepEnteredAt: submitted,
		TotalSteps:    3,
		SubmittedAt:   submitted,
	}
}

func TestRequest_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	in := makeRequest(strings.Repeat("a", 32), "finance", now)
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRequestID(ctx, in.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	if got.Status != requestDomain.StatusPending || got.CurrentStep != 1 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if !got.SubmittedAt.Equal(now) {
		t.Fatalf("SubmittedAt not preserved: got=%v want=%v", got.SubmittedAt, now)
	}
	if len(got.Actions) != 0 {
		t.Fatalf("fresh request has actions: %+v", got.Actions)
	}

	if _, err := repo.GetByRequestID(ctx, strings.Repeat("0", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing: err = %v, want ErrRecordNotFound", err)
	}
}

func TestRequest_AppendActionAndListOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	req := makeRequest(strings.Repeat("b", 32), "finance", now)
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 1; i <= 3; i++ {
		a := &requestDomain.Action{
			ActionID:   strings.Repeat("d", 31) + string(rune('0'+i)),
			RequestID:  req.ID,
			StepOrder:  i,
			StepName:   "step",
			Action:     requestDomain.ActionApproved,
			ApproverID: "emp-1",
			ActedAt:    now.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.AppendAction(ctx, a); err != nil {
			t.Fatalf("AppendAction %d: %v", i, err)
		}
	}

	acts, err := repo.ListActions(ctx, req.ID)
	if err != nil {
		t.Fatalf("ListActions: %v", err)
	}
	if len(acts) != 3 {
		t.Fatalf("actions = %d, want 3", len(acts))
	}
	for i, a := range acts {
		if a.StepOrder != i+1 {
			t.Fatalf("append order broken: %+v", acts)
		}
	}

	// preloads follow the same order
	got, err := repo.GetByRequestID(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	if len(got.Actions) != 3 || got.Actions[0].StepOrder != 1 {
		t.Fatalf("preloaded actions: %+v", got.Actions)
	}
}

func TestRequest_SaveDoesNotTouchActions(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	req := makeRequest(strings.Repeat("e", 32), "finance", time.Now().UTC())
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := &requestDomain.Action{
		ActionID: strings.Repeat("f", 32), RequestID: req.ID, StepOrder: 1,
		StepName: "x", Action: requestDomain.ActionApproved, ApproverID: "emp", ActedAt: time.Now().UTC(),
	}
	if err := repo.AppendAction(ctx, a); err != nil {
		t.Fatalf("AppendAction: %v", err)
	}

	loaded, err := repo.GetByRequestID(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	loaded.CurrentStep = 2
	loaded.StepRole = "gm"
	// mutate the in-memory action copy; Save must not write it back
	loaded.Actions[0].Comments = "tampered"
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reread, err := repo.GetByRequestID(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.CurrentStep != 2 || reread.StepRole != "gm" {
		t.Fatalf("save lost fields: %+v", reread)
	}
	if reread.Actions[0].Comments != "" {
		t.Fatal("Save mutated the immutable action history")
	}
}

func TestRequest_GetForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	req := makeRequest(strings.Repeat("g", 32), "gm", time.Now().UTC())
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRequestIDForUpdate(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestIDForUpdate: %v", err)
	}
	if got.RequestID != req.RequestID {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, err := repo.GetByRequestIDForUpdate(ctx, strings.Repeat("0", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing: err = %v, want ErrRecordNotFound", err)
	}
}

func TestRequest_ListPendingByRole(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	older := makeRequest(strings.Repeat("h", 32), "gm", now.Add(-48*time.Hour))
	newer := makeRequest(strings.Repeat("i", 32), "gm", now)
	otherRole := makeRequest(strings.Repeat("j", 32), "coo", now)
	terminal := makeRequest(strings.Repeat("k", 32), "gm", now.Add(-72*time.Hour))
	terminal.Status = requestDomain.StatusRejected
	done := now
	terminal.CompletedAt = &done

	for _, r := range []*requestDomain.Request{newer, older, otherRole, terminal} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListPendingByRole(ctx, "gm")
	if err != nil {
		t.Fatalf("ListPendingByRole: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2 (terminal and other-role excluded)", len(got))
	}
	if got[0].RequestID != older.RequestID || got[1].RequestID != newer.RequestID {
		t.Fatalf("FIFO order broken: %s, %s", got[0].RequestID, got[1].RequestID)
	}
}
