package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/geohomepro/property-insight/internal/config"
	"github.com/geohomepro/property-insight/internal/filter"
	httpapi "github.com/geohomepro/property-insight/internal/http"
	"github.com/geohomepro/property-insight/internal/recommend"
	"github.com/geohomepro/property-insight/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	loader := storage.NewLoader(logger)

	catalog, err := loader.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "records", len(catalog))

	profiles, err := loader.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		return err
	}
	logger.Info("neighborhood profiles loaded", "districts", len(profiles))

	weights, err := recommend.LoadWeightsFromFile(cfg.WeightsPath)
	if err != nil {
		logger.Warn("using default scoring weights", "reason", err)
	}

	store, err := storage.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		return err
	}
	if n, err := store.CountProperties(); err != nil {
		return err
	} else if n == 0 {
		if err := store.UpsertMany(catalog); err != nil {
			return err
		}
		logger.Info("catalog seeded into sqlite", "records", len(catalog))
	}

	srv := httpapi.NewServer(
		logger,
		filter.NewEngine(logger),
		recommend.NewRanker(weights, logger),
		profiles,
		store,
	)
	srv.CORSOrigins = cfg.CORSOrigins
	srv.MaxPageSize = cfg.MaxPageSize

	httpServer := &http.Server{Addr: cfg.Addr, Handler: srv.Routes()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      parseLogLevel(level),
		TimeFormat: "2006-01-02 15:04:05",
	}))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
