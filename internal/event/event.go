package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Type identifies what happened to a worksite. The set is open: unknown types
// read back from storage are preserved with a nil payload.
type Type string

const (
	TypeCreation          Type = "creation"
	TypeCostAdded         Type = "cost_added"
	TypeCostUpdated       Type = "cost_updated"
	TypeCostDeleted       Type = "cost_deleted"
	TypeAmendmentCreated  Type = "amendment_created"
	TypeAmendmentApproved Type = "amendment_approved"
	TypeAmendmentRejected Type = "amendment_rejected"
	TypeStatusChanged     Type = "status_changed"
	TypeBudgetUpdated     Type = "budget_updated"
)

// Event is one immutable entry in a worksite's timeline. IDs are ULIDs, so
// same-instant entries still sort in insertion order.
type Event struct {
	ID          string
	WorksiteID  uuid.UUID
	Type        Type
	Title       string
	Description string
	Payload     Payload
	EventDate   time.Time
	CreatedAt   time.Time
}

// New builds an event with a fresh ULID and the current time as event date.
func New(worksiteID uuid.UUID, t Type, title, description string, payload Payload) *Event {
	return &Event{
		ID:          ulid.Make().String(),
		WorksiteID:  worksiteID,
		Type:        t,
		Title:       title,
		Description: description,
		Payload:     payload,
		EventDate:   time.Now().UTC(),
	}
}

// Payload is the per-event-type structured detail. Each event type carries
// its own variant; creation events carry none.
type Payload interface {
	eventPayload()
}

// CostPayload accompanies cost_added, cost_updated and cost_deleted.
type CostPayload struct {
	EntryID  uuid.UUID `json:"entry_id"`
	Category string    `json:"category"`
	CostType string    `json:"cost_type"`
	Amount   int64     `json:"amount"`
}

// AmendmentPayload accompanies amendment_created, amendment_approved and
// amendment_rejected.
type AmendmentPayload struct {
	AmendmentID uuid.UUID `json:"amendment_id"`
	CostImpact  int64     `json:"cost_impact"`
}

// StatusPayload accompanies status_changed.
type StatusPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BudgetPayload accompanies budget_updated and amendment_approved budget
// baseline moves.
type BudgetPayload struct {
	Previous int64 `json:"previous"`
	New      int64 `json:"new"`
}

func (CostPayload) eventPayload()      {}
func (AmendmentPayload) eventPayload() {}
func (StatusPayload) eventPayload()    {}
func (BudgetPayload) eventPayload()    {}

// MarshalPayload encodes a payload for storage. Nil payloads map to nil.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling event payload: %w", err)
	}

	return data, nil
}

// UnmarshalPayload decodes stored payload bytes into the variant matching the
// event type. Unknown types and empty payloads decode to nil.
func UnmarshalPayload(t Type, data []byte) (Payload, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var p Payload

	switch t {
	case TypeCostAdded, TypeCostUpdated, TypeCostDeleted:
		p = &CostPayload{}
	case TypeAmendmentCreated, TypeAmendmentApproved, TypeAmendmentRejected:
		p = &AmendmentPayload{}
	case TypeStatusChanged:
		p = &StatusPayload{}
	case TypeBudgetUpdated:
		p = &BudgetPayload{}
	default:
		return nil, nil
	}

	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("unmarshaling %s payload: %w", t, err)
	}

	switch v := p.(type) {
	case *CostPayload:
		return *v, nil
	case *AmendmentPayload:
		return *v, nil
	case *StatusPayload:
		return *v, nil
	case *BudgetPayload:
		return *v, nil
	}

	return nil, nil
}
