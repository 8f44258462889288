package queue

import (
	"context"
	"strings"
	"testing"
	"time"

	domainRequest "grants-approval-engine/internal/domain/request"
	"grants-approval-engine/internal/testutil/requestmock"
)

func pendingRequest(requestID, role string, submitted time.Time, entered time.Time) domainRequest.Request {
	return domainRequest.Request{
		RequestID:     requestID,
		EntityType:    "budget_line",
		EntityID:      "BL-" + requestID[:4],
		Status:        domainRequest.StatusPending,
		CurrentStep:   1,
		StepName:      role + " review",
		StepRole:      role,
		StepEnteredAt: entered,
		TotalSteps:    3,
		SubmittedAt:   submitted,
	}
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().Add(-time.Duration(n) * 24 * time.Hour)
}

func TestListQueue_AgingAndOrder(t *testing.T) {
	old := pendingRequest(strings.Repeat("a", 32), "gm", daysAgo(6), daysAgo(6))
	fresh := pendingRequest(strings.Repeat("b", 32), "gm", daysAgo(0), daysAgo(0))

	repo := &requestmock.Repo{
		ListPendingByRoleFn: func(ctx context.Context, role string) ([]domainRequest.Request, error) {
			if role != "gm" {
				t.Fatalf("role = %q, want gm", role)
			}
			// repository contract: oldest submission first
			return []domainRequest.Request{old, fresh}, nil
		},
	}
	u := NewUsecase(repo)

	items, err := u.ListQueue(context.Background(), "gm")
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].RequestID != old.RequestID {
		t.Fatalf("FIFO order broken: %+v", items)
	}
	if items[0].DaysInQueue == nil || *items[0].DaysInQueue != 6 {
		t.Fatalf("old item DaysInQueue = %v, want 6", items[0].DaysInQueue)
	}
	if items[1].DaysInQueue == nil || *items[1].DaysInQueue != 0 {
		t.Fatalf("fresh item DaysInQueue = %v, want 0", items[1].DaysInQueue)
	}
}

func TestListQueue_AgesFromStepEntry(t *testing.T) {
	// submitted 10 days ago but advanced into the current step 1 day ago:
	// the age is time at the current step, not total request age
	r := pendingRequest(strings.Repeat("c", 32), "coo", daysAgo(10), daysAgo(1))
	r.CurrentStep = 2

	repo := &requestmock.Repo{
		ListPendingByRoleFn: func(ctx context.Context, role string) ([]domainRequest.Request, error) {
			return []domainRequest.Request{r}, nil
		},
	}
	items, err := NewUsecase(repo).ListQueue(context.Background(), "coo")
	if err != nil {
		t.Fatalf("ListQueue: %v", err)
	}
	if *items[0].DaysInQueue != 1 {
		t.Fatalf("DaysInQueue = %d, want 1", *items[0].DaysInQueue)
	}
}

func TestSummarize_BucketsAreDisjoint(t *testing.T) {
	reqs := []domainRequest.Request{
		pendingRequest(strings.Repeat("a", 32), "gm", daysAgo(0), daysAgo(0)),  // under every threshold
		pendingRequest(strings.Repeat("b", 32), "gm", daysAgo(3), daysAgo(3)),  // >=2
		pendingRequest(strings.Repeat("c", 32), "gm", daysAgo(6), daysAgo(6)),  // >=5
		pendingRequest(strings.Repeat("d", 32), "gm", daysAgo(12), daysAgo(12)), // >=10
	}
	repo := &requestmock.Repo{
		ListPendingByRoleFn: func(ctx context.Context, role string) ([]domainRequest.Request, error) {
			return reqs, nil
		},
	}
	u := NewUsecase(repo)

	sum, err := u.Summarize(context.Background(), "gm", []int{2, 5, 10})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Total != 4 {
		t.Fatalf("Total = %d, want 4", sum.Total)
	}
	if sum.Buckets[2] != 1 || sum.Buckets[5] != 1 || sum.Buckets[10] != 1 {
		t.Fatalf("buckets = %v, want one item each", sum.Buckets)
	}
}

func TestSummarize_SingleThreshold(t *testing.T) {
	// submitted 6 days ago, still at step 1: counted under the >=5 bucket
	repo := &requestmock.Repo{
		ListPendingByRoleFn: func(ctx context.Context, role string) ([]domainRequest.Request, error) {
			return []domainRequest.Request{pendingRequest(strings.Repeat("e", 32), "finance", daysAgo(6), daysAgo(6))}, nil
		},
	}
	sum, err := NewUsecase(repo).Summarize(context.Background(), "finance", []int{5})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Total != 1 || sum.Buckets[5] != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestSummarize_EmptyQueueAndNoThresholds(t *testing.T) {
	repo := &requestmock.Repo{
		ListPendingByRoleFn: func(ctx context.Context, role string) ([]domainRequest.Request, error) {
			return nil, nil
		},
	}
	sum, err := NewUsecase(repo).Summarize(context.Background(), "gm", nil)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Total != 0 || len(sum.Buckets) != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}
