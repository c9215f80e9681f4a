package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService() *JWTService {
	return NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestJWTService_RoundTrip(t *testing.T) {
	s := newTestService()

	access, err := s.GenerateAccessToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)

	claims, err := s.ValidateAccessToken(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

// The two token kinds are signed with different secrets, so one must never
// validate as the other.
func TestJWTService_SecretsAreIndependent(t *testing.T) {
	s := newTestService()

	access, err := s.GenerateAccessToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)
	refresh, err := s.GenerateRefreshToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)

	_, err = s.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = s.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	s := NewJWTService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := s.GenerateAccessToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)

	_, err = s.ValidateAccessToken(token)
	assert.Error(t, err)
}

// Each token carries a unique ID so rotation can compare the stored token
// byte for byte even when two are minted in the same second.
func TestJWTService_TokensAreUnique(t *testing.T) {
	s := newTestService()

	first, err := s.GenerateRefreshToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)
	second, err := s.GenerateRefreshToken("user-1", "test@example.com", "user")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_TamperedToken(t *testing.T) {
	s := newTestService()
	other := NewJWTService("other-secret", "other-secret", 15*time.Minute, time.Hour)

	forged, err := other.GenerateAccessToken("user-1", "test@example.com", "admin")
	assert.NoError(t, err)

	_, err = s.ValidateAccessToken(forged)
	assert.Error(t, err)
}
