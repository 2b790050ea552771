package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"parlay-api/internal/config"
	"parlay-api/internal/handlers"
	"parlay-api/internal/monitoring"
	"parlay-api/internal/services"
	"parlay-api/pkg/oddsapi"
)

// NewBuilder wires the odds client and services from configuration
func NewBuilder(cfg *config.Config, log *zerolog.Logger) *services.ParlayBuilder {
	client := oddsapi.NewClient(oddsapi.Options{
		APIKey:     cfg.Odds.APIKey,
		BaseURL:    cfg.Odds.BaseURL,
		Region:     cfg.Odds.Region,
		OddsFormat: cfg.OddsFormat(),
		DateFormat: cfg.Odds.DateFormat,
		Timeout:    cfg.Odds.Timeout,
	})

	oddsService := services.NewOddsService(client, cfg.Odds.Timeout, log)
	return services.NewParlayBuilder(oddsService, services.NewRequestValidator(cfg.Parlay.MaxLegs), log)
}

// New builds the fiber app with its middleware stack and routes
func New(cfg *config.Config, builder *services.ParlayBuilder, log *zerolog.Logger) *fiber.App {
	monitoring.Init()

	parlayHandler := handlers.NewParlayHandler(builder, cfg.Parlay.DefaultLegs, cfg.Odds.Timeout+2*time.Second)
	healthHandler := handlers.NewHealthHandler(builder)

	app := fiber.New(fiber.Config{
		StrictRouting:         true,
		CaseSensitive:         true,
		ServerHeader:          "Parlay-API",
		AppName:               "Parlay API",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          cfg.Odds.Timeout + 5*time.Second,
		BodyLimit:             1024 * 1024, // 1MB
		ErrorHandler:          handlers.NewErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Middleware stack
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       3600,
	}))
	app.Use(monitoring.Middleware())

	// Routes
	app.Get("/", parlayHandler.Root)
	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/parlay", parlayHandler.GetParlay)
	app.Post("/parlay", parlayHandler.PostParlay)
	app.Get("/parlay/example", parlayHandler.Example)

	return app
}
