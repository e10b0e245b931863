package worksite

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type worksiteResponse struct {
	ID               uuid.UUID              `json:"id"`
	ClientID         *uuid.UUID             `json:"client_id,omitempty"`
	Name             string                 `json:"name"`
	Address          string                 `json:"address,omitempty"`
	Status           worksite.Status        `json:"status"`
	BudgetInitial    int64                  `json:"budget_initial"`
	CostsCommitted   int64                  `json:"costs_committed"`
	CostsEstimated   int64                  `json:"costs_estimated"`
	MarginEstimated  int64                  `json:"margin_estimated"`
	MarginPercentage float64                `json:"margin_percentage"`
	Profitability    worksite.Profitability `json:"profitability_status"`
	BudgetAlert      bool                   `json:"has_budget_alert"`
	AmendmentAlert   bool                   `json:"has_amendment_alert"`
	AdminAlert       bool                   `json:"has_admin_alert"`
	StartDate        *time.Time             `json:"start_date,omitempty"`
	PlannedEndDate   *time.Time             `json:"planned_end_date,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        *time.Time             `json:"updated_at,omitempty"`
}

func toResponse(w *worksite.Worksite) worksiteResponse {
	return worksiteResponse{
		ID:               w.ID,
		ClientID:         w.ClientID,
		Name:             w.Name,
		Address:          w.Address,
		Status:           w.Status,
		BudgetInitial:    w.BudgetInitial,
		CostsCommitted:   w.CostsCommitted,
		CostsEstimated:   w.CostsEstimated,
		MarginEstimated:  w.MarginEstimated,
		MarginPercentage: w.MarginPercentage,
		Profitability:    w.Profitability,
		BudgetAlert:      w.BudgetAlert,
		AmendmentAlert:   w.AmendmentAlert,
		AdminAlert:       w.AdminAlert,
		StartDate:        w.StartDate,
		PlannedEndDate:   w.PlannedEndDate,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

func toResponseList(ws []*worksite.Worksite) []worksiteResponse {
	resp := make([]worksiteResponse, len(ws))
	for i, w := range ws {
		resp[i] = toResponse(w)
	}

	return resp
}
