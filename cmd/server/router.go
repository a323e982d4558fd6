package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dnwandana/todo-api/internal/api"
	apiMiddleware "github.com/dnwandana/todo-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)
	r.Use(apiMiddleware.RequestLogger)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.tokenService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher)
	todoHandler := api.NewTodoHandler(app.todoStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	limiter := apiMiddleware.NewRateLimiter(
		app.config.Server.RateLimit,
		time.Duration(app.config.Server.RateLimitWindowSeconds)*time.Second,
	)

	// Authentication endpoints (public, rate limited)
	r.Group(func(r chi.Router) {
		r.Use(limiter.LimitByIP)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/signin", authHandler.Signin)
	})

	// Refresh endpoint guarded by the refresh-token gate
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireRefresh)
		r.Post("/auth/refresh", authHandler.Refresh)
	})

	// Access-token protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAccess)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Delete("/", todoHandler.BulkDelete)
			r.Get("/{id}", todoHandler.Get)
			r.Put("/{id}", todoHandler.Update)
			r.Delete("/{id}", todoHandler.Delete)
		})

		r.Get("/users", userHandler.List)
		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", userHandler.Me)
			r.Put("/", userHandler.UpdateMe)
			r.Delete("/", userHandler.DeleteMe)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
