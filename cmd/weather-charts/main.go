package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // forecast timezones must load without host zoneinfo

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-charts/internal/api/http"
	"github.com/i474232898/weather-charts/internal/chart"
	"github.com/i474232898/weather-charts/internal/config"
	"github.com/i474232898/weather-charts/internal/scheduler"
	"github.com/i474232898/weather-charts/internal/service"
	"github.com/i474232898/weather-charts/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Chart service over the store.
	svc := service.New(memStore, service.Defaults{
		Units:            cfg.DefaultUnits,
		Timezone:         cfg.DefaultTimezone,
		Hourly:           cfg.Hourly,
		Precipitation:    chart.DefaultPrecipitationDimensions,
		Popup:            cfg.Popup,
		TimelineInterval: cfg.TimelineInterval,
	})

	// Scheduler that periodically drops stale forecasts.
	sched := scheduler.New(memStore, cfg.PruneInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-charts",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-charts",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, svc)

	// Start server with graceful shutdown
	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
