package worksite

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a worksite. It is independent of
// the derived profitability classification.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived, StatusCancelled:
		return true
	}

	return false
}

// Profitability is the three-tier classification derived from margin data.
type Profitability string

const (
	Profitable Profitability = "profitable"
	Watch      Profitability = "watch"
	AtRisk     Profitability = "at_risk"
)

var (
	ErrNotFound        = errors.New("worksite not found")
	ErrInvalidName     = errors.New("worksite name is required")
	ErrInvalidBudget   = errors.New("budget must not be negative")
	ErrInvalidStatus   = errors.New("unknown worksite status")
	ErrDatesOutOfOrder = errors.New("planned end date before start date")
)

// Worksite is the central aggregate. All financial fields below BudgetInitial
// are derived caches maintained exclusively by recalculation; they are never
// written directly by callers.
type Worksite struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	ClientID *uuid.UUID
	Name     string
	Address  string
	Status   Status

	BudgetInitial    int64 // centimes
	CostsCommitted   int64
	CostsEstimated   int64
	MarginEstimated  int64
	MarginPercentage float64
	Profitability    Profitability

	BudgetAlert    bool
	AmendmentAlert bool
	AdminAlert     bool

	StartDate      *time.Time
	PlannedEndDate *time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
