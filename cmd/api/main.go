// Package main is the entry point for the Gestion Budget API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AminataF33/gestionbudgetback/config"
	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/infra/db"
	"github.com/AminataF33/gestionbudgetback/internal/infra/dependency"
	"github.com/AminataF33/gestionbudgetback/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Gestion Budget API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")
	}

	// Optional infrastructure
	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	publisher := connectBroker(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("Failed to close event publisher", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Redis:     redisClient,
		Publisher: publisher,
	})
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	seeded, err := injector.SeedCategories.Execute(context.Background())
	if err != nil {
		slog.Error("Failed to seed default categories", "error", err)
		os.Exit(1)
	}
	slog.Info("Default categories ready", "inserted", seeded)

	// Start background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if injector.EmailWorker != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			injector.EmailWorker.Start(workerCtx)
		}()
	}
	if injector.AutoSaveWorker != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			injector.AutoSaveWorker.Start(workerCtx)
		}()
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stopWorkers()
	workers.Wait()

	slog.Info("Server exited properly")
}

func connectRedis(cfg *config.Config) *redis.Client {
	client, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, using in-process locks and rate limits", "error", err)
		return nil
	}
	if client == nil {
		slog.Info("Redis not configured, using in-process locks and rate limits")
	}
	return client
}

func connectBroker(cfg *config.Config) adapter.EventPublisher {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP not configured, domain events are logged only")
		return messaging.NewLogPublisher()
	}
	publisher, err := messaging.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		slog.Warn("AMQP broker unavailable, domain events are logged only", "error", err)
		return messaging.NewLogPublisher()
	}
	return publisher
}
