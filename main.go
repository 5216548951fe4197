package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pliu/messagely/internal/auth"
	"github.com/pliu/messagely/internal/config"
	"github.com/pliu/messagely/internal/handlers"
	"github.com/pliu/messagely/internal/middleware"
	"github.com/pliu/messagely/internal/store/sqlstore"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()

	// Initialize Database
	store, err := sqlstore.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Auth components share the process-wide configuration
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)

	r := handlers.NewRouter(store, hasher, tokens)
	r.Use(middleware.RequestLogger(logger))

	logger.Info("starting server", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
