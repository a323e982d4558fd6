package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
)

// TodoStore defines the interface for todo data persistence. Every read,
// update and delete is scoped by the owning user's ID in addition to the
// todo's own ID; a todo owned by another user behaves exactly like a missing
// one.
type TodoStore interface {
	// Create saves a new todo to the store.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a todo by owner and ID.
	// Returns ErrTodoNotFound if no matching row exists.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Todo, error)

	// Update modifies an existing todo's title, description and completion
	// flag, scoped by owner. Returns ErrTodoNotFound if no matching row
	// exists.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete removes a todo by owner and ID.
	// Returns ErrTodoNotFound if no matching row exists.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteMany removes the given todos owned by userID. IDs that do not
	// exist or belong to another user are skipped silently. Returns the
	// number of rows actually deleted.
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)

	// Count counts the user's todos matching the search pattern (matched
	// against title and description), or all of them when the pattern is
	// empty.
	Count(ctx context.Context, userID uuid.UUID, searchPattern string) (int64, error)

	// List fetches one page of the user's todos under the given options.
	List(ctx context.Context, userID uuid.UUID, opts pagination.ListOptions) ([]*domain.Todo, error)
}
