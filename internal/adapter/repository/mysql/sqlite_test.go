package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no enums/engine specifics) ---

type chainSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	ChainID    string    `gorm:"size:64;uniqueIndex;column:chain_id"`
	EntityType string    `gorm:"size:64;column:entity_type"`
	MinAmount  *float64  `gorm:"column:min_amount"`
	MaxAmount  *float64  `gorm:"column:max_amount"`
	Priority   int       `gorm:"column:priority"`
	Active     bool      `gorm:"column:active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (chainSQLite) TableName() string { return "approval_chains" }

type chainStepSQLite struct {
	ID           uint64 `gorm:"primaryKey;column:id;autoIncrement"`
	ChainID      uint64 `gorm:"column:chain_id;index"`
	StepOrder    int    `gorm:"column:step_order"`
	StepName     string `gorm:"size:128;column:step_name"`
	ApproverRole string `gorm:"size:64;column:approver_role"`
}

func (chainStepSQLite) TableName() string { return "approval_chain_steps" }

type requestSQLite struct {
	ID            uint64     `gorm:"primaryKey;column:id;autoIncrement"`
	RequestID     string     `gorm:"size:64;uniqueIndex;column:request_id"`
	EntityType    string     `gorm:"size:64;column:entity_type"`
	EntityID      string     `gorm:"size:64;column:entity_id"`
	ChainID       uint64     `gorm:"column:chain_id"`
	ChainDefID    string     `gorm:"size:64;column:chain_def_id"`
	Status        string     `gorm:"size:16;column:status"`
	CurrentStep   int        `gorm:"column:current_step"`
	StepName      string     `gorm:"size:128;column:step_name"`
	StepRole      string     `gorm:"size:64;column:step_role"`
	StepEnteredAt time.Time  `gorm:"column:step_entered_at"`
	TotalSteps    int        `gorm:"column:total_steps"`
	SubmittedAt   time.Time  `gorm:"column:submitted_at"`
	CompletedAt   *time.Time `gorm:"column:completed_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (requestSQLite) TableName() string { return "approval_requests" }

type actionSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	ActionID     string    `gorm:"size:64;uniqueIndex;column:action_id"`
	RequestID    uint64    `gorm:"column:request_id;index"`
	StepOrder    int       `gorm:"column:step_order"`
	StepName     string    `gorm:"size:128;column:step_name"`
	Action       string    `gorm:"size:16;column:action"`
	ApproverID   string    `gorm:"size:64;column:approver_id"`
	ApproverName string    `gorm:"size:128;column:approver_name"`
	ActedAt      time.Time `gorm:"column:acted_at"`
	Comments     string    `gorm:"column:comments"`
}

func (actionSQLite) TableName() string { return "approval_actions" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&chainSQLite{}, &chainStepSQLite{}, &requestSQLite{}, &actionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
