package api

import (
	"time"

	"github.com/google/uuid"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SigninRequest is the body of POST /auth/signin.
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse is the data payload of a successful signup.
type SignupResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// SigninResponse is the data payload of a successful signin.
type SigninResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// RefreshResponse is the data payload of a successful token refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// TodoRequest is the body of POST /todos and PUT /todos/{id}.
type TodoRequest struct {
	Title       string `json:"title"        validate:"required,max=255"`
	Description string `json:"description"  validate:"omitempty,max=1000"`
	IsCompleted bool   `json:"is_completed"`
}

// BulkDeleteResponse is the data payload of DELETE /todos?ids=...
type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// UpdateUserRequest is the body of PUT /users/me. Absent fields are left
// unchanged.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
