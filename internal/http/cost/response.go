package cost

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
)

type entryResponse struct {
	ID         uuid.UUID     `json:"id"`
	WorksiteID uuid.UUID     `json:"worksite_id"`
	Category   cost.Category `json:"category"`
	Type       cost.Type     `json:"type"`
	Amount     int64         `json:"amount"`
	Label      string        `json:"label,omitempty"`
	Reference  string        `json:"reference,omitempty"`
	CostDate   time.Time     `json:"cost_date"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(e *cost.Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		WorksiteID: e.WorksiteID,
		Category:   e.Category,
		Type:       e.Type,
		Amount:     e.Amount,
		Label:      e.Label,
		Reference:  e.Reference,
		CostDate:   e.CostDate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toResponseList(entries []*cost.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

type summaryResponse struct {
	Committed  int64                   `json:"committed"`
	Estimated  int64                   `json:"estimated"`
	ByCategory map[cost.Category]int64 `json:"by_category"`
}

func toSummaryResponse(s *cost.Summary) summaryResponse {
	return summaryResponse{
		Committed:  s.Committed,
		Estimated:  s.Estimated,
		ByCategory: s.ByCategory,
	}
}
