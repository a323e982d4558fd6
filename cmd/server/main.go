// Package main implements the entry point for the todo API server: user
// signup/signin with JWT access/refresh tokens and owner-scoped todo CRUD
// with pagination and search.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dnwandana/todo-api/internal/config"
	"github.com/dnwandana/todo-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logr := logger.Setup(cfg.Server)
	logr.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, logr)
	if err != nil {
		logr.Error("failed to initialize application", "error", err)
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.Run(ctx); err != nil {
		logr.Error("server terminated with error", "error", err)
		log.Fatalf("server terminated with error: %v", err)
	}
}
