package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/store"
)

// UserStore implements store.UserStore backed by PostgreSQL.
type UserStore struct {
	db store.DBTX
}

// NewUserStore creates a PostgreSQL implementation of store.UserStore. The
// db handle is initialized and managed by the caller.
func NewUserStore(db store.DBTX) *UserStore {
	return &UserStore{db: db}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: missing password hash", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO users (id, username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrUsernameExists
		}
		return MapError(err)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *UserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.HashedPassword,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}
	return &user, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, hashed_password = $3, updated_at = now()
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, user.ID, user.Username, user.HashedPassword)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrUsernameExists
		}
		return MapError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// Delete implements store.UserStore.Delete. Todos owned by the user are
// removed through the ON DELETE CASCADE constraint.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	return nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context, searchPattern string) (int64, error) {
	query := `SELECT count(*) FROM users`
	args := []any{}
	if searchPattern != "" {
		query += ` WHERE username ILIKE $1 ESCAPE '\'`
		args = append(args, searchPattern)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, MapError(err)
	}
	return total, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, opts pagination.ListOptions) ([]*domain.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM users`
	args := []any{}
	if opts.SearchPattern != "" {
		query += ` WHERE username ILIKE $1 ESCAPE '\'`
		args = append(args, opts.SearchPattern)
	}
	query += orderClause(opts.SortBy, opts.SortOrder, store.UserSortableColumns)
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.HashedPassword,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}
