package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/civiccred/civicstore/internal/middleware"
	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/services"
	"go.uber.org/zap"
)

// WalletHandler handles the merit point ledger endpoints.
type WalletHandler struct {
	store  *services.Store
	logger *zap.SugaredLogger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(store *services.Store, logger *zap.SugaredLogger) *WalletHandler {
	return &WalletHandler{store: store, logger: logger}
}

// Transactions handles GET /api/v1/wallet/transactions for the session
// user, newest first for display.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.SessionUserID(r.Context())
	if userID == "" {
		respondServiceError(w, services.ErrNotAuthenticated)
		return
	}

	txns, err := h.store.GetWalletTransactions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sort.Slice(txns, func(i, j int) bool {
		return txns[i].Timestamp.After(txns[j].Timestamp)
	})
	respondJSON(w, http.StatusOK, txns)
}

// Redeem handles POST /api/v1/wallet/redeem. Deducts points and appends a
// redeemed ledger entry; fails without deducting when the balance does not
// cover the amount.
func (h *WalletHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Amount must be positive and reason is required")
		return
	}

	txn, err := h.store.RedeemPoints(r.Context(), req.Amount, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}
