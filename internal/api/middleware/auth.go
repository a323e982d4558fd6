package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/api/shared"
	"github.com/dnwandana/todo-api/internal/service/auth"
)

// Dedicated token headers. Access and refresh tokens travel in different
// headers so a client can never present one kind to the other gate by
// accident; the generic Authorization header is not used.
const (
	AccessTokenHeader  = "X-Access-Token"
	RefreshTokenHeader = "X-Refresh-Token"
)

// AuthMiddleware provides the token gates for protected routes.
type AuthMiddleware struct {
	tokenService auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAccess validates the access token from the X-Access-Token header
// and binds the user ID to the request context for authorized requests.
func (m *AuthMiddleware) RequireAccess(next http.Handler) http.Handler {
	return m.gate(next, AccessTokenHeader, m.tokenService.ValidateAccessToken)
}

// RequireRefresh validates the refresh token from the X-Refresh-Token
// header. It guards the token-refresh endpoint only.
func (m *AuthMiddleware) RequireRefresh(next http.Handler) http.Handler {
	return m.gate(next, RefreshTokenHeader, m.tokenService.ValidateRefreshToken)
}

func (m *AuthMiddleware) gate(
	next http.Handler,
	header string,
	validate func(ctx context.Context, token string) (*auth.Claims, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(header)
		if token == "" {
			auditLog(r, "rejected", "no token")
			shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := validate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				auditLog(r, "rejected", "token expired")
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
				auditLog(r, "rejected", "invalid token")
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				auditLog(r, "rejected", "verification error")
				shared.RespondWithErrorAndLog(w, r,
					http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		auditLog(r, "accepted", "")

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// auditLog emits the structured authorization audit event for every gate
// outcome.
func auditLog(r *http.Request, outcome, reason string) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"outcome", outcome,
		"trace_id", shared.GetTraceID(r.Context()),
	}
	if reason != "" {
		attrs = append(attrs, "reason", reason)
	}
	slog.Info("authorization", attrs...)
}

// GetUserID extracts the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
