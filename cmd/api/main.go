package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mandalnilabja/chatstream/internal/app"
	"github.com/mandalnilabja/chatstream/internal/config"
	"github.com/mandalnilabja/chatstream/internal/provider"
	"github.com/mandalnilabja/chatstream/internal/storage"
	"github.com/mandalnilabja/chatstream/internal/tokenizer"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler"
	"github.com/mandalnilabja/chatstream/internal/upstream"
)

const (
	logCacheEntries = 10_000
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Provider variables may live in a .env next to the binary
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}

	if err := config.EnsureDataDir(); err != nil {
		slog.Warn("Failed to create data directory", "error", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		slog.Warn("Failed to create config file", "error", err)
	}

	cfg := config.Load()
	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	opts := provider.Options{
		SiteURL:      cfg.SiteURL,
		AppTitle:     cfg.AppTitle,
		DefaultModel: cfg.DefaultModel,
	}
	deps := handler.Deps{
		Client: upstream.NewClient(
			upstream.WithRequestStream(cfg.RequestStream),
			upstream.WithLogger(logger),
		),
		Env:             os.Getenv,
		Options:         opts,
		Tokenizer:       tokenizer.New(),
		MaxPromptTokens: cfg.MaxPromptTokens,
		Logger:          logger,
	}
	// Assigned only when enabled so the interface stays nil otherwise
	if store != nil {
		deps.Storage = store
	}

	repo := handler.NewRepo(deps)
	router := app.NewRouter(repo, &app.RouterOptions{Logger: logger})
	srv := app.NewServer(cfg, router, logger)

	printStartupBanner(cfg, provider.Resolve(os.Getenv, opts).Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage opens the request log when enabled and prunes entries past
// the retention window. It returns nil when the request log is disabled.
func openStorage(cfg *config.Config, logger *slog.Logger) (*storage.CachedStorage, error) {
	if !cfg.EnableRequestLog {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
		return nil, err
	}
	sqliteStore, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewCachedStorage(sqliteStore, logCacheEntries)
	if err != nil {
		sqliteStore.Close()
		return nil, err
	}

	if cfg.LogRetentionDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -cfg.LogRetentionDays).Format(time.DateOnly)
		deleted, err := store.DeleteRequestLogs(cutoff)
		if err != nil {
			logger.Warn("Failed to prune request logs", "error", err)
		} else if deleted > 0 {
			logger.Info("Pruned request logs", "deleted", deleted, "before", cutoff)
		}
	}

	logger.Info("Request log enabled", "db_path", cfg.DBPath)
	return store, nil
}
