package categorize

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziz0u9/MillesBTP-sub000/internal/categorize"
	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/suggest", h.suggest)
	r.Post("/learn", h.learn)
}

type suggestRequest struct {
	Label string `json:"label"`
}

type suggestResponse struct {
	Category cost.Category `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.svc.Suggest(r.Context(), ownerID, req.Label)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{Category: category}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	Keyword  string        `json:"keyword"`
	Category cost.Category `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), ownerID, req.Keyword, req.Category); err != nil {
		if errors.Is(err, categorize.ErrInvalidKeyword) || errors.Is(err, cost.ErrInvalidCategory) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
