package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"emptycup/internal/config"
	"emptycup/internal/database"
	"emptycup/internal/handlers"
	"emptycup/internal/middleware"
	"emptycup/internal/repositories"
	"emptycup/internal/services"
	"emptycup/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load(viper.New())
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if !database.Initialize(context.Background(), db.DB, logger) {
		logger.Fatal("Failed to initialize database schema")
	}
	logger.Info("Database ready", zap.String("backend", string(db.Backend)))

	// --- Event publisher ---
	// Events are optional; without RABBITMQ_URL nothing is published.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, designer events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	app := newApp(cfg, db, logger, publisher)

	// --- Start HTTP Server ---
	logger.Info("Starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Error("Error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

// newApp wires repositories, services and handlers into a Fiber app.
// publisher may be nil.
func newApp(cfg config.Config, db *database.DB, logger *zap.Logger, publisher services.EventPublisher) *fiber.App {
	// --- Repositories ---
	designerRepo := repositories.NewGORMDesignerRepository(db.DB)
	interactionRepo := repositories.NewGORMInteractionRepository(db.DB)

	// --- Services ---
	designerService := services.NewDesignerService(designerRepo, publisher, logger)
	interactionService := services.NewInteractionService(interactionRepo, publisher, logger)

	// --- Handlers ---
	systemHandler := handlers.NewSystemHandler()
	designerHandler := handlers.NewDesignerHandler(designerService, logger)
	interactionHandler := handlers.NewInteractionHandler(interactionService, logger)
	adminHandler := handlers.NewAdminHandler(designerService, session.New(), logger)

	app := fiber.New(fiber.Config{
		AppName:   "EmptyCup",
		BodyLimit: cfg.MaxUploadBytes,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New())

	// --- API Routes ---
	api := app.Group("/api")
	systemHandler.RegisterRoutes(api)
	designerHandler.RegisterRoutes(api)
	interactionHandler.RegisterRoutes(api)

	// --- Admin interface ---
	adminHandler.RegisterRoutes(app)

	return app
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
