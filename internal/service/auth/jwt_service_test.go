package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnwandana/todo-api/internal/config"
)

const (
	testAccessSecret  = "test-access-secret-that-is-32-chars!"
	testRefreshSecret = "test-refresh-secret-that-is-32-chars"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:           testAccessSecret,
		RefreshTokenSecret:          testRefreshSecret,
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

// newTestTokenService builds a service with a fixed clock for predictable
// expiry behavior.
func newTestTokenService(t *testing.T, timeFunc func() time.Time) *hmacTokenService {
	t.Helper()
	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)
	impl, ok := svc.(*hmacTokenService)
	require.True(t, ok)
	if timeFunc != nil {
		impl.timeFunc = timeFunc
	}
	// No leeway so expiry boundaries are exact in tests.
	impl.clockSkew = 0
	return impl
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short access secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.AccessTokenSecret = "too-short"
		_, err := NewTokenService(cfg)
		assert.Error(t, err)
	})

	t.Run("rejects short refresh secret", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.RefreshTokenSecret = "too-short"
		_, err := NewTokenService(cfg)
		assert.Error(t, err)
	})

	t.Run("rejects identical secrets", func(t *testing.T) {
		t.Parallel()
		cfg := testAuthConfig()
		cfg.RefreshTokenSecret = cfg.AccessTokenSecret
		_, err := NewTokenService(cfg)
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := newTestTokenService(t, func() time.Time { return fixedTime })

	token, err := svc.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestTokenKindIsolation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestTokenService(t, nil)

	accessToken, err := svc.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	t.Run("refresh token fails access verification", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateAccessToken(context.Background(), refreshToken)
		// The kinds use different keys, so this dies on the signature, not
		// just the type claim.
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access token fails refresh verification", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateRefreshToken(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("each kind verifies with its own verifier", func(t *testing.T) {
		t.Parallel()
		accessClaims, err := svc.ValidateAccessToken(context.Background(), accessToken)
		require.NoError(t, err)
		assert.Equal(t, "access", accessClaims.TokenType)

		refreshClaims, err := svc.ValidateRefreshToken(context.Background(), refreshToken)
		require.NoError(t, err)
		assert.Equal(t, "refresh", refreshClaims.TokenType)
	})
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	issueTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := issueTime.Add(15 * time.Minute)
	userID := uuid.New()

	issuer := newTestTokenService(t, func() time.Time { return issueTime })
	token, err := issuer.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)

	t.Run("valid one instant before expiry", func(t *testing.T) {
		t.Parallel()
		verifier := newTestTokenService(t, func() time.Time { return expiry.Add(-time.Second) })
		claims, err := verifier.ValidateAccessToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("expired after expiry", func(t *testing.T) {
		t.Parallel()
		verifier := newTestTokenService(t, func() time.Time { return expiry.Add(time.Second) })
		_, err := verifier.ValidateAccessToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, nil)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty string", "", ErrInvalidToken},
		{"garbage", "not-a-jwt-at-all", ErrInvalidToken},
		{"structurally broken", "aaaa.bbbb", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.ValidateAccessToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("token signed with a different secret", func(t *testing.T) {
		t.Parallel()

		cfg := testAuthConfig()
		cfg.AccessTokenSecret = "another-access-secret-of-32-chars!!!"
		other, err := NewTokenService(cfg)
		require.NoError(t, err)

		forged, err := other.GenerateAccessToken(context.Background(), uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(context.Background(), forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
