package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoPolicy_Verify(t *testing.T) {
	policy, err := NewDemoPolicy("password123")
	require.NoError(t, err)

	assert.True(t, policy.Verify("password123"))
	assert.False(t, policy.Verify("password124"))
	assert.False(t, policy.Verify(""))
}

func TestNewDemoPolicy_EmptyPassword(t *testing.T) {
	_, err := NewDemoPolicy("")
	assert.Error(t, err)
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	_, err := NewTokenIssuer("test-secret").Parse("not.a.token")
	assert.Error(t, err)
}
