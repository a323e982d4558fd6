package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/config"
	"github.com/dnwandana/todo-api/internal/platform/logger"
)

// Token type claim values.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// hmacTokenService implements TokenService using HMAC-SHA256 signing with a
// separate key per token kind.
type hmacTokenService struct {
	accessKey       []byte
	refreshKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing

	// clockSkew is the leeway applied to time claims to tolerate drift
	// between token issuer and verifier. It means a token is still accepted
	// up to this long past its declared expiry; tests that pin down the
	// exact expiry instant set it to zero.
	clockSkew time.Duration
}

// jwtCustomClaims defines the JWT claims structure on the wire.
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService using HMAC-SHA256 signing. Both
// secrets must be at least 32 bytes and must differ from each other so that
// access and refresh tokens are never interchangeable.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.AccessTokenSecret) < 32 {
		return nil, fmt.Errorf("access token secret must be at least 32 characters")
	}
	if len(cfg.RefreshTokenSecret) < 32 {
		return nil, fmt.Errorf("refresh token secret must be at least 32 characters")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	return &hmacTokenService{
		accessKey:       []byte(cfg.AccessTokenSecret),
		refreshKey:      []byte(cfg.RefreshTokenSecret),
		accessLifetime:  time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// GenerateAccessToken implements TokenService.GenerateAccessToken.
func (s *hmacTokenService) GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeAccess, s.accessKey, s.accessLifetime)
}

// GenerateRefreshToken implements TokenService.GenerateRefreshToken.
func (s *hmacTokenService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeRefresh, s.refreshKey, s.refreshLifetime)
}

func (s *hmacTokenService) generate(
	ctx context.Context,
	userID uuid.UUID,
	tokenType string,
	key []byte,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(key)
	if err != nil {
		log.Error("failed to sign JWT token",
			"error", err,
			"user_id", userID,
			"token_type", tokenType)
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signedToken, nil
}

// ValidateAccessToken implements TokenService.ValidateAccessToken.
func (s *hmacTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeAccess, s.accessKey)
}

// ValidateRefreshToken implements TokenService.ValidateRefreshToken.
func (s *hmacTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, tokenTypeRefresh, s.refreshKey)
}

func (s *hmacTokenService) validate(
	ctx context.Context,
	tokenString string,
	tokenType string,
	key []byte,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	// The signing algorithm is pinned to HS256; tokens claiming any other
	// method are rejected before signature verification.
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired",
				"token_type", tokenType)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed",
				"error", err,
				"token_type", tokenType)
			return nil, ErrInvalidToken
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"token_type", tokenType,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims",
			"token_type", tokenType)
		return nil, ErrInvalidToken
	}

	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
