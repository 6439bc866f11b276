package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/civiccred/civicstore/internal/models"
	"github.com/civiccred/civicstore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_NewUserDefaults(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))

	sess, err := store.Signup(context.Background(), "asha@example.com", testPassword, "9876543210", "Asha Rao")
	require.NoError(t, err)

	user := sess.User
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, 0, user.MeritsPoints)
	assert.Equal(t, 0, user.ReportsCount)
	assert.False(t, user.AadhaarVerified)
	assert.False(t, user.JoinedAt.IsZero())
	assert.NotEmpty(t, sess.Token)
}

func TestSignup_DuplicateEmailLeavesRecordUntouched(t *testing.T) {
	repo := newTestRepo(t)
	store := newTestStore(t, repo)
	ctx := context.Background()

	signupTestUser(t, store, "asha@example.com")
	before, err := repo.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)

	_, err = store.Signup(ctx, "asha@example.com", testPassword, "1112223334", "Impostor")
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	after, err := repo.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed signup must not modify the user collection")
}

func TestLogin_Success(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	sess, err := store.Login(ctx, "asha@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.User.ID)
	assert.NotEmpty(t, sess.Token)
}

func TestLogin_WrongPasswordAndUnknownEmailSameError(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	signupTestUser(t, store, "asha@example.com")

	_, wrongPw := store.Login(ctx, "asha@example.com", "not-the-password")
	_, unknown := store.Login(ctx, "nobody@example.com", testPassword)

	// Same error kind for both, so responses cannot reveal whether the
	// email exists.
	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestVerifyAadhaar_UpdatesBothCopies(t *testing.T) {
	repo := newTestRepo(t)
	store := newTestStore(t, repo)
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	got, err := store.VerifyAadhaar(ctx, testOTP)
	require.NoError(t, err)
	assert.True(t, got.AadhaarVerified)

	// Collection copy
	raw, err := repo.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
	assert.True(t, users[0].AadhaarVerified)
	assert.Equal(t, user.ID, users[0].ID)

	// Session snapshot copy
	raw, err = repo.Get(ctx, storage.KeyCurrentUser)
	require.NoError(t, err)
	var snapshot models.User
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.True(t, snapshot.AadhaarVerified)
}

func TestVerifyAadhaar_WrongOTP(t *testing.T) {
	repo := newTestRepo(t)
	store := newTestStore(t, repo)
	ctx := context.Background()
	signupTestUser(t, store, "asha@example.com")

	_, err := store.VerifyAadhaar(ctx, "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	raw, err := repo.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.False(t, users[0].AadhaarVerified)
}

func TestVerifyAadhaar_RequiresSession(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	_, err := store.VerifyAadhaar(context.Background(), testOTP)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func newDraft() models.ReportDraft {
	return models.ReportDraft{
		Title:       "Overflowing garbage bin",
		Description: "Garbage bin on 4th cross has not been collected in a week",
		Category:    models.CategoryTrash,
		Severity:    models.SeverityLow,
		Location:    models.Location{Latitude: 12.97, Longitude: 77.59, Address: "4th Cross, Indiranagar"},
		Images:      []string{"file:///photo1.jpg"},
	}
}

func TestCreateReport_RequiresAuthentication(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	_, err := store.CreateReport(context.Background(), newDraft())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateReport_SynthesizedFields(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	report, err := store.CreateReport(ctx, newDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, user.ID, report.UserID)
	assert.Equal(t, models.StatusSubmitted, report.Status)
	assert.True(t, report.AIVerified)

	require.NotNil(t, report.AISuggestion)
	assert.Equal(t, models.CategoryTrash, report.AISuggestion.Category)
	assert.Equal(t, models.SeverityLow, report.AISuggestion.Severity)
	assert.GreaterOrEqual(t, report.AISuggestion.Confidence, 0.70)
	assert.Less(t, report.AISuggestion.Confidence, 1.00)

	require.GreaterOrEqual(t, len(report.Timeline), 2)
	assert.Equal(t, models.EventCreated, report.Timeline[0].Type)
	assert.Equal(t, models.EventVerified, report.Timeline[1].Type)
	assert.Equal(t, user.Name, report.Timeline[0].Actor)
	assert.Equal(t, "AI System", report.Timeline[1].Actor)
	assert.False(t, report.Timeline[1].Timestamp.Before(report.Timeline[0].Timestamp))
}

func TestCreateReport_AwardsMeritsExactlyOnce(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	report, err := store.CreateReport(ctx, newDraft())
	require.NoError(t, err)

	txns, err := store.GetWalletTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TransactionEarned, txns[0].Type)
	assert.Equal(t, MeritAwardPerReport, txns[0].Amount)
	assert.Equal(t, "Report submission", txns[0].Reason)
	assert.Equal(t, report.ID, txns[0].ReportID)

	// The award and the count increment land together on the stored user.
	sess, err := store.Login(ctx, "asha@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, MeritAwardPerReport, sess.User.MeritsPoints)
	assert.Equal(t, 1, sess.User.ReportsCount)
}

func TestGetReports_SeedsOnceOnFirstRead(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()

	first, err := store.GetReports(ctx, "")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "sample_1", first[0].ID)
	assert.Equal(t, "sample_2", first[1].ID)

	second, err := store.GetReports(ctx, "")
	require.NoError(t, err)
	assert.Len(t, second, 2, "second read must not duplicate the seed")
}

func TestGetReports_FilterByUser(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	_, err := store.CreateReport(ctx, newDraft())
	require.NoError(t, err)

	mine, err := store.GetReports(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, user.ID, mine[0].UserID)

	all, err := store.GetReports(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3) // two seeded samples plus the new one
}

func TestGetReport_NotFound(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	_, err := store.GetReport(context.Background(), "no-such-report")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReport_ByID(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	signupTestUser(t, store, "asha@example.com")

	created, err := store.CreateReport(ctx, newDraft())
	require.NoError(t, err)

	got, err := store.GetReport(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
}

func TestRedeemPoints_DeductsAndAppendsLedgerEntry(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	// Earn enough points first.
	for i := 0; i < 5; i++ {
		_, err := store.CreateReport(ctx, newDraft())
		require.NoError(t, err)
	}

	txn, err := store.RedeemPoints(ctx, 50, "Coffee Voucher")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionRedeemed, txn.Type)
	assert.Equal(t, 50, txn.Amount)

	sess, err := store.Login(ctx, user.Email, testPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.User.MeritsPoints)

	// Ledger sums must reconcile with the balance.
	txns, err := store.GetWalletTransactions(ctx, user.ID)
	require.NoError(t, err)
	earned, redeemed := 0, 0
	for _, tx := range txns {
		switch tx.Type {
		case models.TransactionEarned:
			earned += tx.Amount
		case models.TransactionRedeemed:
			redeemed += tx.Amount
		}
	}
	assert.Equal(t, sess.User.MeritsPoints, earned-redeemed)
}

func TestRedeemPoints_InsufficientBalance(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()
	user := signupTestUser(t, store, "asha@example.com")

	_, err := store.RedeemPoints(ctx, 50, "Coffee Voucher")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// No deduction and no ledger entry on failure.
	txns, err := store.GetWalletTransactions(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestGetWalletTransactions_FiltersByUser(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()

	signupTestUser(t, store, "asha@example.com")
	_, err := store.CreateReport(ctx, newDraft())
	require.NoError(t, err)

	other := signupTestUser(t, store, "ravi@example.com")
	txns, err := store.GetWalletTransactions(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, txns, "a fresh user has no ledger entries")
}

func TestTheme_RoundTripAndValidation(t *testing.T) {
	store := newTestStore(t, newTestRepo(t))
	ctx := context.Background()

	theme, err := store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	require.NoError(t, store.SetTheme(ctx, "dark"))
	theme, err = store.GetTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	assert.Error(t, store.SetTheme(ctx, "solarized"))
}
