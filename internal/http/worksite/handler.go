package worksite

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type Handler struct {
	svc *worksite.Service
}

func NewHandler(svc *worksite.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Patch("/{id}/budget", h.updateBudget)
	r.Post("/{id}/recalculate", h.recalculate)
}

type createWorksiteRequest struct {
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	BudgetInitial  int64      `json:"budget_initial"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	PlannedEndDate *time.Time `json:"planned_end_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	var req createWorksiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.svc.Create(r.Context(), worksite.CreateParams{
		OwnerID:        ownerID,
		ClientID:       req.ClientID,
		Name:           req.Name,
		Address:        req.Address,
		BudgetInitial:  req.BudgetInitial,
		StartDate:      req.StartDate,
		PlannedEndDate: req.PlannedEndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	filter := worksite.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		st := worksite.Status(s)
		filter.Status = &st
	}

	if s := r.URL.Query().Get("profitability"); s != "" {
		p := worksite.Profitability(s)
		filter.Profitability = &p
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	ws, err := h.svc.List(r.Context(), ownerID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(ws)); err != nil {
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

	ws, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateWorksiteRequest struct {
	Name           *string    `json:"name,omitempty"`
	Address        *string    `json:"address,omitempty"`
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	RemoveClient   bool       `json:"remove_client,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	PlannedEndDate *time.Time `json:"planned_end_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateWorksiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.svc.Update(r.Context(), ownerID, id, worksite.UpdateParams{
		Name:           req.Name,
		Address:        req.Address,
		ClientID:       req.ClientID,
		RemoveClient:   req.RemoveClient,
		StartDate:      req.StartDate,
		PlannedEndDate: req.PlannedEndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status worksite.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.svc.UpdateStatus(r.Context(), ownerID, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	BudgetInitial int64 `json:"budget_initial"`
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := h.svc.UpdateBudget(r.Context(), ownerID, id, req.BudgetInitial)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ws, err := h.svc.Recalculate(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, worksite.ErrNotFound):
		http.Error(w, "worksite not found", http.StatusNotFound)
	case errors.Is(err, worksite.ErrInvalidName),
		errors.Is(err, worksite.ErrInvalidBudget),
		errors.Is(err, worksite.ErrInvalidStatus),
		errors.Is(err, worksite.ErrDatesOutOfOrder):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
