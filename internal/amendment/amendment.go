package amendment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the state machine of a change order. Both decisions are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound       = errors.New("amendment not found")
	ErrInvalidTitle   = errors.New("amendment title is required")
	ErrAlreadyDecided = errors.New("amendment already decided")
)

// Amendment is a change order altering a worksite's budget or schedule,
// subject to approval. On approval its cost impact (which may be negative)
// moves the worksite's budget baseline.
type Amendment struct {
	ID              uuid.UUID
	WorksiteID      uuid.UUID
	Title           string
	Description     string
	CostImpact      int64 // centimes, may be negative
	TimeImpactHours *int
	Status          Status
	RequestedAt     time.Time
	DecidedAt       *time.Time
	DecisionNotes   string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
