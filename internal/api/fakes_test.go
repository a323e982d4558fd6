package api

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dnwandana/todo-api/internal/config"
	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/service/auth"
	"github.com/dnwandana/todo-api/internal/store"
)

// fakeUserStore implements store.UserStore with configurable function
// fields. Unconfigured methods fail the test if called.
type fakeUserStore struct {
	t             *testing.T
	createFn      func(ctx context.Context, user *domain.User) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByUsername func(ctx context.Context, username string) (*domain.User, error)
	updateFn      func(ctx context.Context, user *domain.User) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	countFn       func(ctx context.Context, searchPattern string) (int64, error)
	listFn        func(ctx context.Context, opts pagination.ListOptions) ([]*domain.User, error)
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createFn == nil {
		f.t.Fatal("unexpected call to UserStore.Create")
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.getByIDFn == nil {
		f.t.Fatal("unexpected call to UserStore.GetByID")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getByUsername == nil {
		f.t.Fatal("unexpected call to UserStore.GetByUsername")
	}
	return f.getByUsername(ctx, username)
}

func (f *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if f.updateFn == nil {
		f.t.Fatal("unexpected call to UserStore.Update")
	}
	return f.updateFn(ctx, user)
}

func (f *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		f.t.Fatal("unexpected call to UserStore.Delete")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeUserStore) Count(ctx context.Context, searchPattern string) (int64, error) {
	if f.countFn == nil {
		f.t.Fatal("unexpected call to UserStore.Count")
	}
	return f.countFn(ctx, searchPattern)
}

func (f *fakeUserStore) List(ctx context.Context, opts pagination.ListOptions) ([]*domain.User, error) {
	if f.listFn == nil {
		f.t.Fatal("unexpected call to UserStore.List")
	}
	return f.listFn(ctx, opts)
}

// fakeTodoStore implements store.TodoStore with configurable function
// fields.
type fakeTodoStore struct {
	t            *testing.T
	createFn     func(ctx context.Context, todo *domain.Todo) error
	getByIDFn    func(ctx context.Context, userID, id uuid.UUID) (*domain.Todo, error)
	updateFn     func(ctx context.Context, todo *domain.Todo) error
	deleteFn     func(ctx context.Context, userID, id uuid.UUID) error
	deleteManyFn func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	countFn      func(ctx context.Context, userID uuid.UUID, searchPattern string) (int64, error)
	listFn       func(ctx context.Context, userID uuid.UUID, opts pagination.ListOptions) ([]*domain.Todo, error)
}

var _ store.TodoStore = (*fakeTodoStore)(nil)

func (f *fakeTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if f.createFn == nil {
		f.t.Fatal("unexpected call to TodoStore.Create")
	}
	return f.createFn(ctx, todo)
}

func (f *fakeTodoStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Todo, error) {
	if f.getByIDFn == nil {
		f.t.Fatal("unexpected call to TodoStore.GetByID")
	}
	return f.getByIDFn(ctx, userID, id)
}

func (f *fakeTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	if f.updateFn == nil {
		f.t.Fatal("unexpected call to TodoStore.Update")
	}
	return f.updateFn(ctx, todo)
}

func (f *fakeTodoStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if f.deleteFn == nil {
		f.t.Fatal("unexpected call to TodoStore.Delete")
	}
	return f.deleteFn(ctx, userID, id)
}

func (f *fakeTodoStore) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if f.deleteManyFn == nil {
		f.t.Fatal("unexpected call to TodoStore.DeleteMany")
	}
	return f.deleteManyFn(ctx, userID, ids)
}

func (f *fakeTodoStore) Count(ctx context.Context, userID uuid.UUID, searchPattern string) (int64, error) {
	if f.countFn == nil {
		f.t.Fatal("unexpected call to TodoStore.Count")
	}
	return f.countFn(ctx, userID, searchPattern)
}

func (f *fakeTodoStore) List(ctx context.Context, userID uuid.UUID, opts pagination.ListOptions) ([]*domain.Todo, error) {
	if f.listFn == nil {
		f.t.Fatal("unexpected call to TodoStore.List")
	}
	return f.listFn(ctx, userID, opts)
}

func newTestTokenService(t *testing.T) auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(config.AuthConfig{
		AccessTokenSecret:           "test-access-secret-that-is-32-chars!",
		RefreshTokenSecret:          "test-refresh-secret-that-is-32-chars",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)
	return svc
}
