package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"parlay-api/internal/app"
	"parlay-api/internal/config"
	"parlay-api/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.Environment)

	if cfg.Odds.APIKey == "" {
		log.Warn().Msg("ODDS_API_KEY not set, live parlays will fail until it is configured")
	}

	builder := app.NewBuilder(cfg, &log)
	server := app.New(cfg, builder, &log)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := server.Listen(":" + port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	log.Info().
		Str("port", port).
		Str("environment", cfg.Environment).
		Str("odds_format", cfg.Odds.Format).
		Dur("odds_timeout", cfg.Odds.Timeout).
		Int("max_legs", cfg.Parlay.MaxLegs).
		Msg("parlay API started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server shutdown complete")
}
