package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/services"
	"go.uber.org/zap"
)

// PreferencesHandler persists presentation-layer preferences. The core
// does not interpret the theme; it just keeps the value durable under its
// fixed key for the UI.
type PreferencesHandler struct {
	store  *services.Store
	logger *zap.SugaredLogger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(store *services.Store, logger *zap.SugaredLogger) *PreferencesHandler {
	return &PreferencesHandler{store: store, logger: logger}
}

// GetTheme handles GET /api/v1/preferences/theme
func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.GetTheme(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ThemePreference{Theme: theme})
}

// SetTheme handles PUT /api/v1/preferences/theme
func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var pref models.ThemePreference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(pref); err != nil {
		respondError(w, http.StatusBadRequest, `Theme must be "dark" or "light"`)
		return
	}

	if err := h.store.SetTheme(r.Context(), pref.Theme); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pref)
}
