package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/jordanshaw/crmgrid/internal/config"
	"github.com/jordanshaw/crmgrid/internal/grid"
	"github.com/jordanshaw/crmgrid/internal/logging"
	"github.com/jordanshaw/crmgrid/internal/prefs"
	"github.com/jordanshaw/crmgrid/internal/store"
	"github.com/jordanshaw/crmgrid/internal/web"
)

func main() {
	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging)
	slog.Info("configuration loaded", "config", cfg.String())

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	st := store.New(pool)
	pf := prefs.NewStore(store.NewPreferenceBlobs(pool))
	svc := grid.NewService(st, pf, cfg.Grid.Module)

	// Build the initial registry from backend metadata. A failed fetch
	// leaves the built-in-only catalog in place rather than blocking
	// startup.
	if err := svc.RefreshMetadata(ctx); err != nil {
		slog.Warn("initial metadata fetch failed, serving built-in fields only", "error", err)
	}

	server := web.NewServer(svc, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr(), "module", cfg.Grid.Module)
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
