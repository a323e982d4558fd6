package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for issuing and verifying the two kinds of
// identity tokens. Access and refresh tokens are signed with distinct secrets
// and have distinct lifetimes; a token of one kind never verifies as the
// other.
type TokenService interface {
	// GenerateAccessToken creates a signed, short-lived access token for the
	// given user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies an access token and extracts its claims.
	// Fails with ErrExpiredToken past expiry, ErrInvalidToken for malformed
	// tokens or bad signatures, and ErrWrongTokenType for refresh tokens.
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed, long-lived refresh token for
	// the given user. Refresh tokens authorize issuing a new access token
	// only.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken verifies a refresh token and extracts its claims,
	// with the same failure normalization as ValidateAccessToken.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the verified content of a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
