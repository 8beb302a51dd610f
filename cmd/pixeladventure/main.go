// Package main is the entry point for Pixel Adventure.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/config"
	"github.com/samdwyer/pixeladventure/internal/game"
	"github.com/samdwyer/pixeladventure/internal/gfx"
	"github.com/samdwyer/pixeladventure/internal/logging"
	"github.com/samdwyer/pixeladventure/internal/telemetry"
	"github.com/samdwyer/pixeladventure/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes PIXEL_* and HONEYCOMB_PIXELADVENTURE_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "pixeladventure: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn("telemetry setup failed, running without traces", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	g, err := game.New(game.Config{
		Seed:       cfg.Game.Seed,
		TextSpeed:  cfg.Game.TextSpeed,
		EnemyDelay: cfg.Game.EnemyDelay,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	if err := g.Start(ctx); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	logger.Info("starting frontend", zap.String("frontend", cfg.Display.Frontend))
	switch cfg.Display.Frontend {
	case config.FrontendWindow:
		return gfx.NewWindow(ctx, g, gfx.Options{
			Scale:     cfg.Display.WindowScale,
			FrameRate: cfg.Game.FrameRate,
			Logger:    logger,
		}).Run()
	default:
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer screen.Close()

		return ui.NewTerminal(screen, ui.Options{
			FrameRate:    cfg.Game.FrameRate,
			ReleaseDelay: cfg.Display.ReleaseDelay,
			Logger:       logger,
		}).Run(ctx, g)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_PIXELADVENTURE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_PIXELADVENTURE_DATASET")
	if dataset == "" {
		dataset = "pixeladventure" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
