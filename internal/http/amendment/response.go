package amendment

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/amendment"
)

type amendmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	WorksiteID      uuid.UUID        `json:"worksite_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	CostImpact      int64            `json:"cost_impact"`
	TimeImpactHours *int             `json:"time_impact_hours,omitempty"`
	Status          amendment.Status `json:"status"`
	RequestedAt     time.Time        `json:"requested_at"`
	DecidedAt       *time.Time       `json:"decided_at,omitempty"`
	DecisionNotes   string           `json:"decision_notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(a *amendment.Amendment) amendmentResponse {
	return amendmentResponse{
		ID:              a.ID,
		WorksiteID:      a.WorksiteID,
		Title:           a.Title,
		Description:     a.Description,
		CostImpact:      a.CostImpact,
		TimeImpactHours: a.TimeImpactHours,
		Status:          a.Status,
		RequestedAt:     a.RequestedAt,
		DecidedAt:       a.DecidedAt,
		DecisionNotes:   a.DecisionNotes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toResponseList(as []*amendment.Amendment) []amendmentResponse {
	resp := make([]amendmentResponse, len(as))
	for i, a := range as {
		resp[i] = toResponse(a)
	}

	return resp
}
