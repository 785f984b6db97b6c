package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/api"
	"building-telemetry-backend/internal/auth"
	"building-telemetry-backend/internal/db"
	"building-telemetry-backend/internal/seed"
	"building-telemetry-backend/internal/simulator"
	"building-telemetry-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "telemetry-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Printf("no config file at %s, using defaults", configPath)
		cfg = config.Default()
	} else if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Provision demo data. Re-running against a seeded database skips
	// existing sensors.
	if cfg.Seed.Enabled {
		seed.Run(ctx, appStore, &cfg.Seed)
	}

	// Run the simulated-update loop in the background.
	simulatorSvc := simulator.NewService(&cfg.Simulator, appStore)
	go simulatorSvc.Run(ctx)

	// Initialize router
	router := api.NewRouter(appStore, auth.NewRegistry(), &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel() // stops the simulator loop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
