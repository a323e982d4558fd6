package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dnwandana/todo-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows maps to not found",
			err:  sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "wrapped no rows maps to not found",
			err:  fmt.Errorf("querying user: %w", sql.ErrNoRows),
			want: store.ErrNotFound,
		},
		{
			name: "unique violation maps to duplicate",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to invalid entity",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "todos_user_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation maps to invalid entity",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "todos_title_check"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation maps to invalid entity",
			err:  &pgconn.PgError{Code: "23502", ColumnName: "title"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unrecognized errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		original := errors.New("connection reset")
		assert.Equal(t, original, MapError(original))
	})

	t.Run("original error remains inspectable", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		mapped := MapError(fmt.Errorf("inserting user: %w", pgErr))

		assert.ErrorIs(t, mapped, store.ErrDuplicate)
		var got *pgconn.PgError
		assert.ErrorAs(t, mapped, &got)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
	assert.False(t, IsUniqueViolation(nil))
}
