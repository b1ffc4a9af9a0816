package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/pradeeppeddineni/weather-app/internal/api/http"
	"github.com/pradeeppeddineni/weather-app/internal/config"
	"github.com/pradeeppeddineni/weather-app/internal/news"
	"github.com/pradeeppeddineni/weather-app/internal/openmeteo"
	"github.com/pradeeppeddineni/weather-app/internal/scheduler"
	"github.com/pradeeppeddineni/weather-app/internal/store"
	"github.com/pradeeppeddineni/weather-app/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Custom-city persistence.
	cityDB, err := store.OpenCityDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open city db: %v", err)
	}
	defer cityDB.Close()

	// In-memory per-city bundle store.
	memStore := store.NewMemoryStore()

	// Upstream client with resilience (backoff + circuit breakers).
	source := openmeteo.NewClient(httpClient, openmeteo.DefaultEndpoints())

	// Core service orchestrating fetches, merge and store.
	service := weather.NewService(memStore, source, cityDB)

	// Initial load: all cities in parallel, each degrading
	// independently on failure.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	service.LoadAll(loadCtx)
	cancelLoad()

	// Scheduler that periodically refreshes every bundle.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	newsFetcher := news.NewFetcher(httpClient)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-app",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, newsFetcher)

	go func() {
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
