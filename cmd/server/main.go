package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/utiming/internal/config"
	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/locale"
	"github.com/JonMunkholm/utiming/internal/logging"
	"github.com/JonMunkholm/utiming/internal/metrics"
	_ "github.com/JonMunkholm/utiming/internal/source" // Register all sources
	"github.com/JonMunkholm/utiming/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := core.OpenSource(ctx, cfg.Races.Source, core.SourceConfig{
		Dir:          cfg.Races.Dir,
		IndexName:    cfg.Races.IndexName,
		BaseURL:      cfg.Races.BaseURL,
		DatabaseURL:  cfg.Database.URL,
		MaxConns:     int32(cfg.Database.MaxConns),
		MinConns:     int32(cfg.Database.MinConns),
		FetchTimeout: cfg.Races.FetchTimeout,
		MaxBytes:     cfg.Races.MaxFileSize,
	})
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("close source", "error", err)
			}
		}()
	}
	slog.Info("race source opened", "kind", cfg.Races.Source)

	limiter := core.NewFetchLimiter(src, cfg.Races.MaxConcurrentFetches, cfg.Races.FetchWait)

	var m *metrics.Metrics
	serviceOpts := []core.Option{}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		if err := m.RegisterGauge("fetches_in_flight", "Source reads currently in progress.", func() float64 {
			return float64(limiter.ActiveCount())
		}); err != nil {
			return err
		}
		serviceOpts = append(serviceOpts, core.WithObserver(m))
	}
	service := core.NewService(limiter, serviceOpts...)

	tr, err := locale.New(cfg.Races.DefaultLocale)
	if err != nil {
		return err
	}
	slog.Info("translations loaded", "default", cfg.Races.DefaultLocale, "languages", tr.Languages())

	server := web.NewServer(service, tr, cfg, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Wait for reads still holding a source slot
		if n := limiter.ActiveCount(); n > 0 {
			slog.Info("waiting for source reads to complete", "active", n)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("source reads did not complete in time", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
