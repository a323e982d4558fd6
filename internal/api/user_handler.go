package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dnwandana/todo-api/internal/api/middleware"
	"github.com/dnwandana/todo-api/internal/api/shared"
	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/service/auth"
	"github.com/dnwandana/todo-api/internal/store"
)

// UserHandler handles the user directory and the authenticated user's
// profile requests.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, passwordHasher auth.PasswordHasher) *UserHandler {
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
	}
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// List handles GET /users with pagination and username search. The page is
// built from public user views, so password hashes never enter the response
// path.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	params, err := pagination.ParamsFromQuery(r.URL.Query())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := pagination.Paginate(
		r.Context(),
		params,
		store.UserSortableColumns,
		h.userStore.Count,
		func(ctx context.Context, opts pagination.ListOptions) ([]UserResponse, error) {
			users, err := h.userStore.List(ctx, opts)
			if err != nil {
				return nil, err
			}
			views := make([]UserResponse, 0, len(users))
			for _, user := range users {
				views = append(views, userResponse(user))
			}
			return views, nil
		},
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "users retrieved", page)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "user retrieved", userResponse(user))
}

// UpdateMe handles PUT /users/me. Absent fields keep their current values; a
// new password is hashed before it touches the store.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Username == "" && req.Password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Nothing to update")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to update user")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Password != "" {
		hashed, err := h.passwordHasher.Hash(req.Password)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				http.StatusInternalServerError, "Failed to update user", err)
			return
		}
		user.HashedPassword = hashed
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Username already exists")
			return
		}
		h.respondStoreError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "user updated", userResponse(user))
}

// DeleteMe handles DELETE /users/me. Todos owned by the account are removed
// with it.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	if err := h.userStore.Delete(r.Context(), userID); err != nil {
		h.respondStoreError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "user deleted", nil)
}

func (h *UserHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, store.ErrUserNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, fallback, err)
}
