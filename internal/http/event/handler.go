package event

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/event"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
)

type Handler struct {
	svc *event.Service
}

func NewHandler(svc *event.Service) *Handler {
	return &Handler{svc: svc}
}

// WorksiteRoutes mounts the timeline routes nested under a worksite; the {id}
// URL parameter is the worksite.
func (h *Handler) WorksiteRoutes(r chi.Router) {
	r.Get("/", h.list)
}

type eventResponse struct {
	ID          string        `json:"id"`
	WorksiteID  uuid.UUID     `json:"worksite_id"`
	Type        event.Type    `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Payload     event.Payload `json:"payload,omitempty"`
	EventDate   time.Time     `json:"event_date"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	events, err := h.svc.List(r.Context(), ownerID, worksiteID)
	if err != nil {
		if errors.Is(err, event.ErrWorksiteNotFound) {
			http.Error(w, "worksite not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = eventResponse{
			ID:          e.ID,
			WorksiteID:  e.WorksiteID,
			Type:        e.Type,
			Title:       e.Title,
			Description: e.Description,
			Payload:     e.Payload,
			EventDate:   e.EventDate,
			CreatedAt:   e.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
