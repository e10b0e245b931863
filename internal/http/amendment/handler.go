package amendment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/amendment"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type Handler struct {
	svc *amendment.Service
}

func NewHandler(svc *amendment.Service) *Handler {
	return &Handler{svc: svc}
}

// WorksiteRoutes mounts the routes nested under a worksite; the {id} URL
// parameter is the worksite.
func (h *Handler) WorksiteRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// Routes mounts the routes addressing an amendment directly.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

type createAmendmentRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	CostImpact      int64  `json:"cost_impact"`
	TimeImpactHours *int   `json:"time_impact_hours,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	var req createAmendmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), ownerID, amendment.CreateParams{
		WorksiteID:      worksiteID,
		Title:           req.Title,
		Description:     req.Description,
		CostImpact:      req.CostImpact,
		TimeImpactHours: req.TimeImpactHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
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

	var status *amendment.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := amendment.Status(s)
		status = &st
	}

	as, err := h.svc.List(r.Context(), ownerID, worksiteID, status)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(as)); err != nil {
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

	a, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Reject)
}

func (h *Handler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, ownerID, id uuid.UUID, notes string) (*amendment.Amendment, error),
) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req decisionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	a, err := fn(r.Context(), ownerID, id, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(a)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, amendment.ErrNotFound):
		http.Error(w, "amendment not found", http.StatusNotFound)
	case errors.Is(err, worksite.ErrNotFound):
		http.Error(w, "worksite not found", http.StatusNotFound)
	case errors.Is(err, amendment.ErrAlreadyDecided):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, amendment.ErrInvalidTitle):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
