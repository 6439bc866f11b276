package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/civiccred/civicstore/internal/auth"
	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testPassword = "password123"
	testOTP      = "123456"
)

// newTestRepo opens a fresh in-memory document store per test.
func newTestRepo(t *testing.T) storage.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := storage.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// newTestStore builds a store with zero simulated latency over repo.
func newTestStore(t *testing.T, repo storage.Repository) *Store {
	t.Helper()
	policy, err := auth.NewDemoPolicy(testPassword)
	require.NoError(t, err)
	tokens := auth.NewTokenIssuer("test-secret")
	return NewStore(repo, policy, tokens, testOTP, Latency{}, zap.NewNop().Sugar())
}

// signupTestUser creates and logs in a fresh user.
func signupTestUser(t *testing.T, store *Store, email string) models.User {
	t.Helper()
	sess, err := store.Signup(context.Background(), email, testPassword, "9876543210", "Asha Rao")
	require.NoError(t, err)
	return sess.User
}
