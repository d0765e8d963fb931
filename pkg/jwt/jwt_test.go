package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15, 168)

	token, err := m.GenerateAccessToken("user-1", "admin@library.vn", "admin")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@library.vn", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenHasNoIdentityClaims(t *testing.T) {
	m := NewManager("test-secret", 15, 168)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func TestVerifyToken_WrongSecretFails(t *testing.T) {
	token, err := NewManager("secret-a", 15, 168).GenerateAccessToken("user-1", "a@b.vn", "admin")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 15, 168).VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_ExpiredFails(t *testing.T) {
	// Expiry 0 phút thì token hết hạn ngay khi phát hành
	m := NewManager("test-secret", 0, 168)

	token, err := m.GenerateAccessToken("user-1", "a@b.vn", "admin")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_GarbageFails(t *testing.T) {
	m := NewManager("test-secret", 15, 168)
	_, err := m.VerifyToken("not.a.token")
	assert.Error(t, err)
}
