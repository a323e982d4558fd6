package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/store"
)

// TodoStore implements store.TodoStore backed by PostgreSQL. Every read,
// update and delete filters on user_id as well as id, so rows owned by other
// users surface as store.ErrTodoNotFound.
type TodoStore struct {
	db store.DBTX
}

// NewTodoStore creates a PostgreSQL implementation of store.TodoStore.
func NewTodoStore(db store.DBTX) *TodoStore {
	return &TodoStore{db: db}
}

var _ store.TodoStore = (*TodoStore)(nil)

// todoSearchClause matches the search pattern case-insensitively against the
// columns exposed to search. The placeholder index is injected by the caller.
func todoSearchClause(placeholder int) string {
	return fmt.Sprintf(
		`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`,
		placeholder, placeholder,
	)
}

// Create implements store.TodoStore.Create.
func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if err := todo.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO todos (id, user_id, title, description, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.IsCompleted,
		todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TodoStore.GetByID.
func (s *TodoStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, is_completed, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Description,
		&todo.IsCompleted, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTodoNotFound
		}
		return nil, MapError(err)
	}

	return &todo, nil
}

// Update implements store.TodoStore.Update.
func (s *TodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	if err := todo.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE todos
		SET title = $3, description = $4, is_completed = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.IsCompleted)
	if err != nil {
		return MapError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTodoNotFound
	}

	return nil
}

// Delete implements store.TodoStore.Delete.
func (s *TodoStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return MapError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTodoNotFound
	}

	return nil
}

// DeleteMany implements store.TodoStore.DeleteMany. The user_id filter makes
// ids owned by other users fall out of the match silently; no error is
// raised for them.
func (s *TodoStore) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`DELETE FROM todos WHERE user_id = $1 AND id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, MapError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}

	return rows, nil
}

// Count implements store.TodoStore.Count.
func (s *TodoStore) Count(ctx context.Context, userID uuid.UUID, searchPattern string) (int64, error) {
	query := `SELECT count(*) FROM todos WHERE user_id = $1`
	args := []any{userID}
	if searchPattern != "" {
		query += ` AND ` + todoSearchClause(2)
		args = append(args, searchPattern)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, MapError(err)
	}
	return total, nil
}

// List implements store.TodoStore.List.
func (s *TodoStore) List(ctx context.Context, userID uuid.UUID, opts pagination.ListOptions) ([]*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, is_completed, created_at, updated_at
		FROM todos
		WHERE user_id = $1`
	args := []any{userID}
	if opts.SearchPattern != "" {
		query += ` AND ` + todoSearchClause(2)
		args = append(args, opts.SearchPattern)
	}
	query += orderClause(opts.SortBy, opts.SortOrder, store.TodoSortableColumns)
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var todos []*domain.Todo
	for rows.Next() {
		var todo domain.Todo
		err := rows.Scan(
			&todo.ID, &todo.UserID, &todo.Title, &todo.Description,
			&todo.IsCompleted, &todo.CreatedAt, &todo.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return todos, nil
}
