package importcosts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziz0u9/MillesBTP-sub000/internal/categorize"
	"github.com/ziz0u9/MillesBTP-sub000/internal/cost"
	"github.com/ziz0u9/MillesBTP-sub000/internal/http/auth"
	"github.com/ziz0u9/MillesBTP-sub000/internal/importer"
	"github.com/ziz0u9/MillesBTP-sub000/internal/worksite"
)

type Handler struct {
	importSvc *importer.Service
	costSvc   *cost.Service
	catSvc    *categorize.Service
}

func NewHandler(importSvc *importer.Service, costSvc *cost.Service, catSvc *categorize.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		costSvc:   costSvc,
		catSvc:    catSvc,
	}
}

// Routes are mounted under a worksite; the {id} URL parameter is the worksite.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.preview)
	r.Post("/confirm", h.confirm)
}

type lineDTO struct {
	Category  cost.Category `json:"category"`
	Type      cost.Type     `json:"type"`
	Amount    int64         `json:"amount"`
	Label     string        `json:"label"`
	Reference string        `json:"reference,omitempty"`
	CostDate  time.Time     `json:"cost_date"`
}

type previewResponse struct {
	Lines []lineDTO `json:"lines"`
}

// preview parses the uploaded CSV and returns the cost lines it would create,
// with categories refined by learned keyword mappings. Nothing is persisted;
// the client reviews and posts the (possibly corrected) lines to confirm.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	if _, err := uuid.Parse(chi.URLParam(r, "id")); err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatBatigest
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{Lines: make([]lineDTO, 0, len(params))}

	for _, p := range params {
		if suggested, err := h.catSvc.Suggest(r.Context(), ownerID, p.Label); err == nil && suggested != "" {
			p.Category = suggested
		}

		resp.Lines = append(resp.Lines, lineDTO{
			Category:  p.Category,
			Type:      p.Type,
			Amount:    p.Amount,
			Label:     p.Label,
			Reference: p.Reference,
			CostDate:  p.CostDate,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	Lines []lineDTO `json:"lines"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

// confirm pushes each reviewed line through the regular add-entry pipeline, so
// every line is validated and every insert recalculates the worksite and logs
// a timeline event.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.OwnerID(r.Context())

	worksiteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid worksite id", http.StatusBadRequest)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0

	for _, line := range req.Lines {
		_, err := h.costSvc.Add(r.Context(), ownerID, cost.CreateParams{
			WorksiteID: worksiteID,
			Category:   line.Category,
			Type:       line.Type,
			Amount:     line.Amount,
			Label:      line.Label,
			Reference:  line.Reference,
			CostDate:   line.CostDate,
		})
		if err != nil {
			writeConfirmError(w, err, imported)
			return
		}

		imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(confirmResponse{Imported: imported}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeConfirmError(w http.ResponseWriter, err error, imported int) {
	slog.Error("import aborted", "error", err, "imported", imported)

	switch {
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
