package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's HashedPassword must
	// already be set; plaintext passwords are never persisted.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update modifies an existing user's username and, when HashedPassword
	// is set, their password hash.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists when updating to a taken username.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and, through cascading constraints, their todos.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the search pattern (matched against the
	// username), or all users when the pattern is empty.
	Count(ctx context.Context, searchPattern string) (int64, error)

	// List fetches one page of users under the given options.
	List(ctx context.Context, opts pagination.ListOptions) ([]*domain.User, error)
}
