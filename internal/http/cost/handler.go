package cost

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type Handler struct {
	svc *cost.Service
}

func NewHandler(svc *cost.Service) *Handler {
	return &Handler{svc: svc}
}

// WorksiteRoutes mounts the routes nested under a worksite; the {id} URL
// parameter is the worksite.
func (h *Handler) WorksiteRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
}

// Routes mounts the routes addressing an entry directly.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createEntryRequest struct {
	Category  cost.Category `json:"category"`
	Type      cost.Type     `json:"type"`
	Amount    int64         `json:"amount"`
	Label     string        `json:"label"`
	Reference string        `json:"reference"`
	CostDate  *time.Time    `json:"cost_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := cost.CreateParams{
		WorksiteID: worksiteID,
		Category:   req.Category,
		Type:       req.Type,
		Amount:     req.Amount,
		Label:      req.Label,
		Reference:  req.Reference,
	}

	if req.CostDate != nil {
		params.CostDate = *req.CostDate
	}

	entry, err := h.svc.Add(r.Context(), ownerID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	filter := cost.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := cost.Type(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("category"); s != "" {
		c := cost.Category(s)
		filter.Category = &c
	}

	entries, err := h.svc.List(r.Context(), ownerID, worksiteID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summary(r.Context(), ownerID, worksiteID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEntryRequest struct {
	Category  *cost.Category `json:"category,omitempty"`
	Type      *cost.Type     `json:"type,omitempty"`
	Amount    *int64         `json:"amount,omitempty"`
	Label     *string        `json:"label,omitempty"`
	Reference *string        `json:"reference,omitempty"`
	CostDate  *time.Time     `json:"cost_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Update(r.Context(), ownerID, id, cost.UpdateParams{
		Category:  req.Category,
		Type:      req.Type,
		Amount:    req.Amount,
		Label:     req.Label,
		Reference: req.Reference,
		CostDate:  req.CostDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cost.ErrNotFound):
		http.Error(w, "cost entry not found", http.StatusNotFound)
	case errors.Is(err, worksite.ErrNotFound):
		http.Error(w, "worksite not found", http.StatusNotFound)
	case errors.Is(err, cost.ErrInvalidAmount),
		errors.Is(err, cost.ErrInvalidCategory),
		errors.Is(err, cost.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
