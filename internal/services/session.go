package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/storage"
	"go.uber.org/zap"
)

// SessionManager represents "who is logged in". It holds an in-memory copy
// of the current user, delegates credential work to the backend store, and
// persists session state so a fresh process restore reconstructs it.
//
// Not safe for concurrent writers: the execution model is one active UI
// context per device, so operations are serialized by the single caller.
type SessionManager struct {
	repo   storage.Repository
	store  *Store
	logger *zap.SugaredLogger

	current *models.User
	token   string
}

// NewSessionManager wires a session manager over the backend store and
// subscribes to user mutations so the cached copy never drifts from the
// stored collection.
func NewSessionManager(repo storage.Repository, store *Store, logger *zap.SugaredLogger) *SessionManager {
	sm := &SessionManager{repo: repo, store: store, logger: logger}
	store.OnUserUpdated(sm.syncUser)
	return sm
}

// Restore loads the persisted session on startup. Malformed or partial
// state degrades to logged-out: the corrupt keys are cleared and no error
// is returned to the caller.
func (m *SessionManager) Restore(ctx context.Context) {
	token, tokenErr := m.repo.Get(ctx, storage.KeyToken)
	raw, userErr := m.repo.Get(ctx, storage.KeyCurrentUser)

	if tokenErr != nil || userErr != nil {
		m.clear(ctx)
		return
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		m.logger.Warnw("Stored session unreadable, starting logged out",
			"error", ErrMalformedState)
		m.clear(ctx)
		return
	}

	m.current = &user
	m.token = string(token)
	m.logger.Infow("Session restored", "user_id", user.ID)
}

// Login authenticates via the backend store and caches the identity.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.User, error) {
	sess, err := m.store.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.current = &sess.User
	m.token = sess.Token
	return m.Current(), nil
}

// Signup creates the account via the backend store and behaves like a
// login with the new identity.
func (m *SessionManager) Signup(ctx context.Context, email, password, phone, name string) (*models.User, error) {
	sess, err := m.store.Signup(ctx, email, password, phone, name)
	if err != nil {
		return nil, err
	}
	m.current = &sess.User
	m.token = sess.Token
	return m.Current(), nil
}

// Logout clears the persisted token and snapshot and drops the cached
// identity. Always succeeds; a storage hiccup is logged, not surfaced.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.store.ClearSession(ctx); err != nil {
		m.logger.Warnw("Failed to clear persisted session", "error", err)
	}
	m.current = nil
	m.token = ""
}

// UpdateUser replaces the current user record and re-persists it. The id
// must match the session identity: a session can never change whose it is.
func (m *SessionManager) UpdateUser(ctx context.Context, updated models.User) error {
	if m.current == nil {
		return ErrNotAuthenticated
	}
	if updated.ID != m.current.ID {
		return fmt.Errorf("user id mismatch: %w", ErrNotFound)
	}
	// writeUser refreshes both the collection copy and the snapshot, then
	// notifies back into syncUser to update the cache.
	return m.store.UpdateUser(ctx, updated)
}

// Current returns a copy of the authenticated user, or nil.
func (m *SessionManager) Current() *models.User {
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// Token returns the active session token, or the empty string.
func (m *SessionManager) Token() string {
	return m.token
}

// Authenticated reports whether a user is logged in.
func (m *SessionManager) Authenticated() bool {
	return m.current != nil
}

// syncUser refreshes the cached copy when the store mutates the matching
// user record (merit awards, verification, profile edits).
func (m *SessionManager) syncUser(u models.User) {
	if m.current != nil && m.current.ID == u.ID {
		m.current = &u
	}
}

func (m *SessionManager) clear(ctx context.Context) {
	for _, key := range []string{storage.KeyToken, storage.KeyCurrentUser} {
		if err := m.repo.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			m.logger.Warnw("Failed to clear session key", "key", key, "error", err)
		}
	}
	m.current = nil
	m.token = ""
}
