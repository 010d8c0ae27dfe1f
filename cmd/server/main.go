package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"energydash/internal/api"
	"energydash/internal/config"
	"energydash/internal/engine"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API is live immediately; data routes answer 503 until the
	// background load completes.
	h := api.NewHandler(nil, engine.Options{GrowthFormula: cfg.Growth(), TopN: cfg.TopN})
	h.RegisterRoutes(e)

	reload := func() {
		t0 := time.Now()
		h.SetDataset(engine.LoadOrSample(cfg.DataPath, cfg.Fill(), logger))
		logger.Info("dataset ready", "took", time.Since(t0))
	}
	go reload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egctx := errgroup.WithContext(ctx)

	if cfg.Watch {
		eg.Go(func() error {
			return engine.WatchFile(egctx, cfg.DataPath, logger, reload)
		})
	}

	eg.Go(func() error {
		logger.Info("server ready", "addr", fmt.Sprintf(":%d", cfg.Port))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Debug("shutting down server...")
		return e.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
