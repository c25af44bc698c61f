package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-portal-backend/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTL:    ttl,
		AdminEmails: []string{"warden@kongu.edu"},
	})
}

func TestTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(time.Hour)
	userID := uuid.New()

	token, err := mgr.IssueToken(userID, "student@kongu.edu")
	require.NoError(t, err)

	identity, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "student@kongu.edu", identity.Email)
	assert.Equal(t, RoleStudent, identity.Role)
	assert.False(t, identity.IsAdmin())
}

func TestAdminRoleFromAllowList(t *testing.T) {
	mgr := newTestManager(time.Hour)

	token, err := mgr.IssueToken(uuid.New(), "Warden@Kongu.edu")
	require.NoError(t, err)

	identity, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, identity.Role)
	assert.True(t, identity.IsAdmin())
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	mgr := newTestManager(time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := mgr.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Tampered payload", func(t *testing.T) {
		token, err := mgr.IssueToken(uuid.New(), "student@kongu.edu")
		require.NoError(t, err)

		_, err = mgr.Verify(token[:len(token)-2] + "xx")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
		token, err := other.IssueToken(uuid.New(), "student@kongu.edu")
		require.NoError(t, err)

		_, err = mgr.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := newTestManager(-time.Minute)
		token, err := expired.IssueToken(uuid.New(), "student@kongu.edu")
		require.NoError(t, err)

		_, err = mgr.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIsAdminEmail(t *testing.T) {
	mgr := newTestManager(time.Hour)
	assert.True(t, mgr.IsAdminEmail("warden@kongu.edu"))
	assert.True(t, mgr.IsAdminEmail("WARDEN@KONGU.EDU"))
	assert.False(t, mgr.IsAdminEmail("student@kongu.edu"))
}
