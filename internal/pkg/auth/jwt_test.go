package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univera/univera/internal/pkg/apperrors"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "univera.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestJWTService()

	accessToken, refreshToken, expiresIn, err := service.GenerateTokenPair(42, "asha@univera.edu", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "asha@univera.edu", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "univera.test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	accessToken, _, _, err := newTestJWTService().GenerateTokenPair(42, "asha@univera.edu", "ADMIN")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	service := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Hour,
	})

	accessToken, _, _, err := service.GenerateTokenPair(42, "asha@univera.edu", "ADMIN")
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenExpiry(t *testing.T) {
	service := newTestJWTService()
	expiry := service.RefreshTokenExpiry()

	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiry, time.Minute)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// Scheme comparison is case insensitive
	token, err = ExtractBearerToken("bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = ExtractBearerToken("abc123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic abc123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}
