package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("AccessRoundTrip", func(t *testing.T) {
		tok, err := tm.GenerateAccessToken("u1", "1234567890123")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "1234567890123", claims.IDCardNumber)
		assert.Equal(t, TokenTypeAccess, claims.Type)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Refresh", func(t *testing.T) {
		tok, err := tm.GenerateRefreshToken("u1")
		require.NoError(t, err)
		claims, err := tm.ValidateToken(tok)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		tok, err := NewTokenManager("another-secret-another-secret-xx", time.Hour, time.Hour).GenerateAccessToken("u1", "")
		require.NoError(t, err)
		_, err = tm.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		m := NewTokenManager(testSecret, time.Minute, time.Minute).(*tokenManager)
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := m.GenerateAccessToken("u1", "")
		require.NoError(t, err)
		_, err = tm.ValidateToken(tok)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
