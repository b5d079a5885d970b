package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/passbi/fuelroute/internal/api"
	"github.com/passbi/fuelroute/internal/cache"
	"github.com/passbi/fuelroute/internal/db"
	"github.com/passbi/fuelroute/internal/optimizer"
	"github.com/passbi/fuelroute/internal/stations"
)

func main() {
	_ = godotenv.Load()

	log.Println("Starting fuel route optimizer API server...")

	pool, err := db.GetDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	if _, err := cache.GetClient(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()
	log.Println("Redis connection established")

	index, err := buildStationIndex(pool)
	if err != nil {
		log.Fatalf("Failed to build station index: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Fuel Route Optimizer API",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	h := api.NewHandlers(pool, index)

	app.Get("/health", api.Health)

	v1 := app.Group("/api/v1")
	v1.Post("/route/optimize", h.OptimizeRoute)
	v1.Get("/stations/near", h.StationsNear)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "endpoint not found",
		})
	})

	port := getEnv("API_PORT", "8080")
	addr := fmt.Sprintf(":%s", port)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Server listening on http://localhost%s", addr)
	log.Printf("Optimize route: POST http://localhost%s/api/v1/route/optimize", addr)
	log.Printf("Health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStationIndex chooses between the in-memory snapshot (fast, loaded
// once at startup, the teacher's graph.GetGraph pattern) and a per-call
// Postgres index (no warm-up, always current), selected by
// STATION_INDEX so small deployments can skip the load step entirely.
func buildStationIndex(pool *pgxpool.Pool) (optimizer.StationIndex, error) {
	if getEnv("STATION_INDEX", "memory") == "postgres" {
		log.Println("Using Postgres-backed station index")
		return stations.NewPostgresIndex(pool), nil
	}

	idx := stations.GetMemoryIndex()
	if err := idx.LoadFromDB(context.Background(), pool); err != nil {
		return nil, fmt.Errorf("failed to load station index: %w", err)
	}
	return idx, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// customErrorHandler handles errors returned from handlers.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
