package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler handles report submission, listing, and live suggestions.
type ReportHandler struct {
	store  *services.Store
	logger *zap.SugaredLogger
}

// NewReportHandler creates a new report handler
func NewReportHandler(store *services.Store, logger *zap.SugaredLogger) *ReportHandler {
	return &ReportHandler{store: store, logger: logger}
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.ReportDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(draft); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: title, description, category, severity")
		return
	}

	report, err := h.store.CreateReport(r.Context(), draft)
	if err != nil {
		h.logger.Errorw("Failed to create report", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// List handles GET /api/v1/reports with an optional user_id filter.
// The store does not guarantee ordering; the display contract is newest
// first, so the sort happens here.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.GetReports(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	respondJSON(w, http.StatusOK, reports)
}

// Get handles GET /api/v1/reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Report id required")
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Suggest handles POST /api/v1/reports/suggest — the live classifier call
// used while a citizen is still drafting.
func (h *ReportHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, h.store.Suggest(req.Title, req.Description))
}
