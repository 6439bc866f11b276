// Package services contains the business logic of the local civic data
// store: the mock backend store, the session manager, and the suggestion
// classifier. Services are called by handlers and own all reads and writes
// of the persisted collections.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/civiccred/civicstore/internal/auth"
	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeritAwardPerReport is the fixed number of points earned for submitting
// a report.
const MeritAwardPerReport = 10

// Store is the mock backend: sole owner of the user, report, and
// transaction collections. Every operation performs a read-modify-write
// cycle against the repository; there is exactly one active caller per
// device, so no locking discipline is applied at this boundary.
type Store struct {
	repo    storage.Repository
	policy  *auth.DemoPolicy
	tokens  *auth.TokenIssuer
	logger  *zap.SugaredLogger
	latency Latency

	acceptedOTP string
	rng         *rand.Rand

	// Dependents notified when a user record changes, so cached copies
	// (the session manager's, in particular) stay consistent with the
	// stored collection.
	onUserUpdated []func(models.User)
}

// NewStore creates the backend store.
func NewStore(repo storage.Repository, policy *auth.DemoPolicy, tokens *auth.TokenIssuer, acceptedOTP string, latency Latency, logger *zap.SugaredLogger) *Store {
	return &Store{
		repo:        repo,
		policy:      policy,
		tokens:      tokens,
		logger:      logger,
		latency:     latency,
		acceptedOTP: acceptedOTP,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// OnUserUpdated registers a callback invoked after any mutation of a user
// record. Must be called during wiring, before the store serves requests.
func (s *Store) OnUserUpdated(fn func(models.User)) {
	s.onUserUpdated = append(s.onUserUpdated, fn)
}

func (s *Store) notifyUserUpdated(u models.User) {
	for _, fn := range s.onUserUpdated {
		fn(u)
	}
}

// Login checks credentials against the demo policy and opens a session.
// Unknown email and wrong password fail with the same error kind so the
// response does not reveal which one was wrong.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Session, error) {
	wait(ctx, s.latency.Auth)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}

	if user == nil || !s.policy.Verify(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.persistSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User logged in", "user_id", user.ID)
	return &models.Session{User: *user, Token: token}, nil
}

// Signup creates a new user and opens a session for it. The password is
// accepted as-is: under the demo policy every account shares one password,
// so nothing per-user is stored.
func (s *Store) Signup(ctx context.Context, email, password, phone, name string) (*models.Session, error) {
	wait(ctx, s.latency.Auth)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return nil, ErrDuplicateIdentity
		}
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Phone:    phone,
		Name:     name,
		JoinedAt: time.Now().UTC(),
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	token, err := s.persistSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User signed up", "user_id", user.ID)
	return &models.Session{User: user, Token: token}, nil
}

// VerifyAadhaar completes the simulated identity verification. The number
// format (12 numeric digits) is validated by the caller; only the OTP is
// checked here. On success the flag is flipped on both the session
// snapshot and the user collection record.
func (s *Store) VerifyAadhaar(ctx context.Context, otp string) (*models.User, error) {
	wait(ctx, s.latency.Verify)

	if otp != s.acceptedOTP {
		return nil, ErrInvalidOTP
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user.AadhaarVerified = true
	if err := s.writeUser(ctx, *user); err != nil {
		return nil, err
	}

	s.logger.Infow("Aadhaar verification completed", "user_id", user.ID)
	return user, nil
}

// CreateReport synthesizes a full report from a citizen draft, persists it,
// and awards the submission merits. The point award and the reportsCount
// increment land in one user write, so callers never observe one without
// the other.
func (s *Store) CreateReport(ctx context.Context, draft models.ReportDraft) (*models.Report, error) {
	wait(ctx, s.latency.Create)

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if !draft.Category.Valid() || !draft.Severity.Valid() {
		return nil, fmt.Errorf("invalid category or severity in draft")
	}
	status := draft.Status
	if status == "" {
		status = models.StatusSubmitted
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q in draft", draft.Status)
	}

	now := time.Now().UTC()
	suggestion := Classify(draft.Title, draft.Description, s.rng)

	report := models.Report{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Title:        draft.Title,
		Description:  draft.Description,
		Category:     draft.Category,
		Severity:     draft.Severity,
		Status:       status,
		Location:     draft.Location,
		Images:       draft.Images,
		AIVerified:   true,
		AISuggestion: &suggestion,
		Timeline: []models.TimelineEvent{
			{
				ID:          uuid.NewString(),
				Type:        models.EventCreated,
				Title:       "Report Created",
				Description: "Issue reported by citizen",
				Timestamp:   now,
				Actor:       user.Name,
			},
			{
				ID:          uuid.NewString(),
				Type:        models.EventVerified,
				Title:       "AI Verification Complete",
				Description: "Report verified by AI system",
				Timestamp:   now,
				Actor:       "AI System",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	reports, err := s.loadReports(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.saveReports(ctx, append(reports, report)); err != nil {
		return nil, err
	}

	if err := s.awardMerits(ctx, user, MeritAwardPerReport, "Report submission", report.ID); err != nil {
		return nil, err
	}

	s.logger.Infow("Report created",
		"report_id", report.ID,
		"user_id", user.ID,
		"category", report.Category,
		"severity", report.Severity,
	)
	return &report, nil
}

// GetReports returns all reports, or only those owned by userID when one
// is given. Ordering is not guaranteed; callers sort by createdAt when
// recency matters. An uninitialized collection is seeded with two sample
// reports on first read.
func (s *Store) GetReports(ctx context.Context, userID string) ([]models.Report, error) {
	wait(ctx, s.latency.List)

	reports, err := s.loadReports(ctx)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return reports, nil
	}

	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if r.UserID == userID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// GetReport looks up a single report by id.
func (s *Store) GetReport(ctx context.Context, id string) (*models.Report, error) {
	wait(ctx, s.latency.Lookup)

	reports, err := s.loadReports(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
}

// GetWalletTransactions returns the full ledger for a user, unsorted.
func (s *Store) GetWalletTransactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	wait(ctx, s.latency.Lookup)

	txns, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.WalletTransaction, 0, len(txns))
	for _, t := range txns {
		if t.UserID == userID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// RedeemPoints spends merit points from the current user's balance and
// appends a redeemed ledger entry. Fails without deducting when the
// balance does not cover the amount.
func (s *Store) RedeemPoints(ctx context.Context, amount int, reason string) (*models.WalletTransaction, error) {
	wait(ctx, s.latency.Lookup)

	if amount <= 0 {
		return nil, fmt.Errorf("redeem amount must be positive")
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.MeritsPoints < amount {
		return nil, ErrInsufficientBalance
	}

	txn := models.WalletTransaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Type:      models.TransactionRedeemed,
		Amount:    amount,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
	if err := s.appendTransaction(ctx, txn); err != nil {
		return nil, err
	}

	user.MeritsPoints -= amount
	if err := s.writeUser(ctx, *user); err != nil {
		return nil, err
	}

	s.logger.Infow("Points redeemed", "user_id", user.ID, "amount", amount, "reason", reason)
	return &txn, nil
}

// Suggest runs the classifier for a live drafting suggestion. Pure
// pass-through; no delay, no persistence.
func (s *Store) Suggest(title, description string) models.AISuggestion {
	return Classify(title, description, s.rng)
}

// UpdateUser replaces a user record in both the collection and, when it is
// the session user, the persisted snapshot. The id must refer to an
// existing record.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	return s.writeUser(ctx, user)
}

// GetTheme returns the persisted theme preference, defaulting to light.
func (s *Store) GetTheme(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, storage.KeyTheme)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "light", nil
	}
	if err != nil {
		return "", err
	}

	var pref models.ThemePreference
	if err := json.Unmarshal(raw, &pref); err != nil {
		return "light", nil
	}
	return pref.Theme, nil
}

// SetTheme persists the theme preference. Only "dark" and "light" are
// accepted.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("invalid theme %q", theme)
	}
	raw, err := json.Marshal(models.ThemePreference{Theme: theme})
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, storage.KeyTheme, raw)
}

// ClearSession removes the persisted token and user snapshot.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.repo.Delete(ctx, storage.KeyToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, storage.KeyCurrentUser)
}

// awardMerits appends an earned ledger entry and applies the point and
// report-count bump to the owning user in a single user write.
func (s *Store) awardMerits(ctx context.Context, user *models.User, amount int, reason, reportID string) error {
	txn := models.WalletTransaction{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Type:      models.TransactionEarned,
		Amount:    amount,
		Reason:    reason,
		ReportID:  reportID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.appendTransaction(ctx, txn); err != nil {
		return err
	}

	user.MeritsPoints += amount
	user.ReportsCount++
	return s.writeUser(ctx, *user)
}

// currentUser reads the session snapshot. Operations that need an
// authenticated user fail with ErrNotAuthenticated when it is absent or
// unreadable.
func (s *Store) currentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.repo.Get(ctx, storage.KeyCurrentUser)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return nil, ErrNotAuthenticated
	}
	return &user, nil
}

// persistSession issues a token and writes the token and user snapshot
// under their fixed keys, so a fresh process restore reconstructs the
// same session.
func (s *Store) persistSession(ctx context.Context, user models.User) (string, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	if err := s.repo.Put(ctx, storage.KeyToken, []byte(token)); err != nil {
		return "", fmt.Errorf("persist session token: %w", err)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	if err := s.repo.Put(ctx, storage.KeyCurrentUser, raw); err != nil {
		return "", fmt.Errorf("persist user snapshot: %w", err)
	}
	return token, nil
}

// writeUser stores the updated user into the collection and, when it is
// the session user, refreshes the snapshot. Dependents are notified last.
func (s *Store) writeUser(ctx context.Context, user models.User) error {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	if current, err := s.currentUser(ctx); err == nil && current.ID == user.ID {
		raw, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.repo.Put(ctx, storage.KeyCurrentUser, raw); err != nil {
			return fmt.Errorf("refresh user snapshot: %w", err)
		}
	}

	s.notifyUserUpdated(user)
	return nil
}

func (s *Store) loadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.loadCollection(ctx, storage.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []models.User) error {
	return s.saveCollection(ctx, storage.KeyUsers, users)
}

// loadReports reads the report collection, seeding it with the two sample
// reports if the collection key has never been written. Seeding keys off
// the key's existence, not list emptiness, so it runs at most once.
func (s *Store) loadReports(ctx context.Context) ([]models.Report, error) {
	raw, err := s.repo.Get(ctx, storage.KeyReports)
	if errors.Is(err, storage.ErrKeyNotFound) {
		seeded := sampleReports()
		if err := s.saveReports(ctx, seeded); err != nil {
			return nil, err
		}
		s.logger.Infow("Report collection seeded", "count", len(seeded))
		return seeded, nil
	}
	if err != nil {
		return nil, err
	}

	var reports []models.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		return nil, fmt.Errorf("decode report collection: %w", ErrMalformedState)
	}
	return reports, nil
}

func (s *Store) saveReports(ctx context.Context, reports []models.Report) error {
	return s.saveCollection(ctx, storage.KeyReports, reports)
}

func (s *Store) loadTransactions(ctx context.Context) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	if err := s.loadCollection(ctx, storage.KeyTransactions, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) appendTransaction(ctx context.Context, txn models.WalletTransaction) error {
	txns, err := s.loadTransactions(ctx)
	if err != nil {
		return err
	}
	return s.saveCollection(ctx, storage.KeyTransactions, append(txns, txn))
}

// loadCollection decodes a stored document into dst; a never-written key
// leaves dst at its zero value.
func (s *Store) loadCollection(ctx context.Context, key string, dst interface{}) error {
	raw, err := s.repo.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, ErrMalformedState)
	}
	return nil
}

func (s *Store) saveCollection(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.repo.Put(ctx, key, raw)
}
