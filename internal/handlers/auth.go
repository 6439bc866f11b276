package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/services"
	"go.uber.org/zap"
)

// AuthHandler handles session and identity endpoints.
type AuthHandler struct {
	sessions *services.SessionManager
	store    *services.Store
	logger   *zap.SugaredLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionManager, store *services.Store, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{sessions: sessions, store: store, logger: logger}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.Session{User: *user, Token: h.sessions.Token()})
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid signup fields")
		return
	}

	user, err := h.sessions.Signup(r.Context(), req.Email, req.Password, req.Phone, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.Session{User: *user, Token: h.sessions.Token()})
}

// Logout handles POST /api/v1/auth/logout. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/v1/auth/session — the restored identity, if any.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.Current()
	if user == nil {
		respondServiceError(w, services.ErrNotAuthenticated)
		return
	}
	respondJSON(w, http.StatusOK, models.Session{User: *user, Token: h.sessions.Token()})
}

// VerifyAadhaar handles POST /api/v1/auth/aadhaar/verify. The 12-digit
// number format is enforced here; the store checks only the OTP.
func (h *AuthHandler) VerifyAadhaar(w http.ResponseWriter, r *http.Request) {
	var req models.AadhaarVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Aadhaar number must be 12 digits")
		return
	}

	user, err := h.store.VerifyAadhaar(r.Context(), req.OTP)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"verified": true,
		"user":     user,
	})
}

// UpdateProfile handles PUT /api/v1/auth/profile. The user id must match
// the session identity; everything else is replaced as given.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.sessions.UpdateUser(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.sessions.Current())
}
