package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnwandana/todo-api/internal/api/shared"
	"github.com/dnwandana/todo-api/internal/config"
	"github.com/dnwandana/todo-api/internal/service/auth"
)

func newTestTokenService(t *testing.T) auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(config.AuthConfig{
		AccessTokenSecret:           "test-access-secret-that-is-32-chars!",
		RefreshTokenSecret:          "test-refresh-secret-that-is-32-chars",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)
	return svc
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func TestRequireAccess(t *testing.T) {
	t.Parallel()

	tokenService := newTestTokenService(t)
	userID := uuid.New()

	nextCalled := func() (*bool, http.Handler) {
		called := false
		return &called, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			gotID, ok := GetUserID(r)
			assert.True(t, ok)
			assert.Equal(t, userID, gotID)
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("no token is rejected", func(t *testing.T) {
		t.Parallel()
		called, next := nextCalled()
		m := NewAuthMiddleware(tokenService)

		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		rec := httptest.NewRecorder()
		m.RequireAccess(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeMessage(t, rec))
		assert.False(t, *called)
	})

	t.Run("garbage token is rejected as invalid", func(t *testing.T) {
		t.Parallel()
		called, next := nextCalled()
		m := NewAuthMiddleware(tokenService)

		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set(AccessTokenHeader, "garbage")
		rec := httptest.NewRecorder()
		m.RequireAccess(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeMessage(t, rec))
		assert.False(t, *called)
	})

	t.Run("refresh token presented to the access gate is rejected", func(t *testing.T) {
		t.Parallel()
		called, next := nextCalled()
		m := NewAuthMiddleware(tokenService)

		refreshToken, err := tokenService.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set(AccessTokenHeader, refreshToken)
		rec := httptest.NewRecorder()
		m.RequireAccess(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeMessage(t, rec))
		assert.False(t, *called)
	})

	t.Run("valid token binds the user ID and passes through", func(t *testing.T) {
		t.Parallel()
		called, next := nextCalled()
		m := NewAuthMiddleware(tokenService)

		accessToken, err := tokenService.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		req.Header.Set(AccessTokenHeader, accessToken)
		rec := httptest.NewRecorder()
		m.RequireAccess(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})
}

func TestRequireRefresh(t *testing.T) {
	t.Parallel()

	tokenService := newTestTokenService(t)
	userID := uuid.New()

	t.Run("valid refresh token passes the refresh gate", func(t *testing.T) {
		t.Parallel()
		m := NewAuthMiddleware(tokenService)

		refreshToken, err := tokenService.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set(RefreshTokenHeader, refreshToken)
		rec := httptest.NewRecorder()

		m.RequireRefresh(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, ok := GetUserID(r)
			assert.True(t, ok)
			assert.Equal(t, userID, gotID)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("access token presented to the refresh gate is rejected", func(t *testing.T) {
		t.Parallel()
		m := NewAuthMiddleware(tokenService)

		accessToken, err := tokenService.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set(RefreshTokenHeader, accessToken)
		rec := httptest.NewRecorder()

		m.RequireRefresh(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeMessage(t, rec))
	})

	t.Run("token in the wrong header is treated as absent", func(t *testing.T) {
		t.Parallel()
		m := NewAuthMiddleware(tokenService)

		refreshToken, err := tokenService.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set(AccessTokenHeader, refreshToken)
		rec := httptest.NewRecorder()

		m.RequireRefresh(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", decodeMessage(t, rec))
	})
}
