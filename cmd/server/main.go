package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/testtrackhq/testtrack/internal/config"
	"github.com/testtrackhq/testtrack/internal/database"
	"github.com/testtrackhq/testtrack/internal/handlers"
	"github.com/testtrackhq/testtrack/internal/middleware"
	"github.com/testtrackhq/testtrack/internal/services"

	_ "github.com/testtrackhq/testtrack/docs/api" // Swagger docs
)

// @title TestTrack API
// @version 1.0.0
// @description Manual-QA test-case tracker with consolidated status aggregation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/testtrackhq/testtrack

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name qa_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the sample catalog on first boot
	if cfg.SeedOnEmpty {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize the session gate
	if err := services.InitAuth(cfg); err != nil {
		log.Fatalf("Failed to initialize session gate: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("testtrack")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint, open for container probes
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Session gate
	authHandler := &handlers.AuthHandler{}
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Everything below requires a session
	api.Use(middleware.AuthSession())

	// Create handlers
	testsHandler := &handlers.TestsHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	resultsHandler := &handlers.ResultsHandler{DB: db}
	exportHandler := &handlers.ExportHandler{DB: db}

	// Test catalog routes
	api.Get("/tests", testsHandler.ListTests)
	api.Post("/tests", testsHandler.CreateTest)
	api.Get("/tests/:id", testsHandler.GetTest)
	api.Put("/tests/:id", testsHandler.UpdateTest)
	api.Delete("/tests/:id", testsHandler.DeleteTest)
	api.Post("/tests/:id/duplicate", testsHandler.DuplicateTest)
	api.Get("/tests/:id/results", testsHandler.GetTestResults)
	api.Delete("/tests/:id/results", testsHandler.ClearTestResults)

	// Tester registry routes
	api.Get("/users", usersHandler.ListUsers)
	api.Post("/users", usersHandler.CreateUser)
	api.Get("/users/:id", usersHandler.GetUser)
	api.Delete("/users/:id", usersHandler.DeleteUser)
	api.Get("/users/:id/results", usersHandler.GetUserResults)

	// Result routes
	api.Get("/results", resultsHandler.ListResults)
	api.Post("/results", resultsHandler.CreateResult)
	api.Put("/results/:id", resultsHandler.UpdateResult)
	api.Delete("/results/:id", resultsHandler.DeleteResult)

	// Export routes
	api.Get("/export/json", exportHandler.ExportJSON)
	api.Get("/export/csv", exportHandler.ExportCSV)

	// Destructive bulk reset, gated behind an explicit confirmation header
	api.Post("/admin/reset",
		middleware.RequireConfirmation("X-Confirm-Reset", "yes"),
		usersHandler.ResetAllUserData)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
