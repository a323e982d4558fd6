package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dnwandana/todo-api/internal/api/middleware"
	"github.com/dnwandana/todo-api/internal/api/shared"
	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/service/auth"
	"github.com/dnwandana/todo-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	tokenService     auth.TokenService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		tokenService:     tokenService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validation runs before any collaborator call; a short username never
	// reaches the hasher or the store.
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Username, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, "user created", SignupResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// Signin handles POST /auth/signin. An unknown username and a wrong password
// produce byte-identical responses so accounts cannot be enumerated.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}

	accessToken, err := h.tokenService.GenerateAccessToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r,
			http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.tokenService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r,
			http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "signin successful", SigninResponse{
		ID:           user.ID,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh handles POST /auth/refresh. The refresh gate has already verified
// the token and bound the user ID to the context; a valid refresh token
// authorizes issuing a new access token only.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	accessToken, err := h.tokenService.GenerateAccessToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", userID)
		shared.RespondWithError(w, r,
			http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "token refreshed", RefreshResponse{
		AccessToken: accessToken,
	})
}
