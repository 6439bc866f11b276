// Package handlers contains HTTP request handlers for the local CivicCred
// API. Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/civiccred/civicstore/internal/services"
	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; validator instances cache struct
// metadata, so one per process.
var validate = validator.New()

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the store's error taxonomy onto HTTP statuses.
// The message is the short human-readable string the UI shows; no
// structured codes beyond the status are exposed.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, services.ErrDuplicateIdentity):
		respondError(w, http.StatusConflict, "Email already exists")
	case errors.Is(err, services.ErrInvalidOTP):
		respondError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, services.ErrInsufficientBalance):
		respondError(w, http.StatusBadRequest, "Insufficient merit point balance")
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
