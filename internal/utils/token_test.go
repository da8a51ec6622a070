package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
	at, err := NewAccessToken("secret", "uid-123", "faculty", 15)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), at.Exp, 5*time.Second)

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
		require.Equal(t, jwt.SigningMethodHS256, tok.Method)
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "uid-123", claims["sub"])
	require.Equal(t, "faculty", claims["role"])

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
		return []byte("wrong"), nil
	})
	require.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	require.Len(t, a.Raw, 96)
	require.NotEqual(t, a.Raw, b.Raw)
	require.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	require.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "hunter2"))
	require.False(t, VerifyPassword(hash, "Hunter2"))

	// Out-of-range cost falls back to the default instead of failing.
	hash, err = HashPassword("hunter2", -1)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "hunter2"))
}
