package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenika/hellenika-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-32-chars-long!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "short"
	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsRefreshToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	refresh, err := svc.GenerateRefreshToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	// And the other direction.
	access, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Issue a token in the past, then validate at the present.
	issuedAt := time.Now().Add(-3 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   "another-secret-also-32-chars-long!!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	v := NewBcryptVerifier(4) // minimal cost keeps the test fast

	hash, err := v.Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, v.Compare(hash, "correct horse battery"))
	assert.Error(t, v.Compare(hash, "wrong password"))
}
