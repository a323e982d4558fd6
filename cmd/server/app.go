package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dnwandana/todo-api/internal/config"
	"github.com/dnwandana/todo-api/internal/platform/postgres"
	"github.com/dnwandana/todo-api/internal/service/auth"
	"github.com/dnwandana/todo-api/internal/store"
)

// application holds the assembled dependencies of the running server. All
// configuration is injected here once at startup; nothing reads ambient
// global state afterwards.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	db               *sql.DB
	userStore        store.UserStore
	todoStore        store.TodoStore
	tokenService     auth.TokenService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires up the database, stores and services.
func newApplication(ctx context.Context, cfg *config.Config, logr *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, logr)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logr); err != nil {
		_ = db.Close()
		return nil, err
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logr,
		db:               db,
		userStore:        postgres.NewUserStore(db),
		todoStore:        postgres.NewTodoStore(db),
		tokenService:     tokenService,
		passwordHasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		passwordVerifier: auth.NewBcryptVerifier(),
	}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails. Shutdown drains in-flight requests with a bounded grace period.
func (app *application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
