package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/retailhub/retailhub-backend/config"
	"github.com/retailhub/retailhub-backend/internal/app/controller"
	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/retailhub/retailhub-backend/internal/router"
	"github.com/retailhub/retailhub-backend/internal/scheduler"
	"github.com/retailhub/retailhub-backend/internal/storage"
	"github.com/retailhub/retailhub-backend/internal/store"
	"github.com/retailhub/retailhub-backend/internal/websocket"
	"github.com/retailhub/retailhub-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting RetailHub Backend Server", logger.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Store.Backend,
		"log_level":   cfg.Log.Level,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize record store
	retailerRepo, closeStore, err := store.Open(ctx, cfg, true)
	if err != nil {
		logger.Fatal("Failed to open record store", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close record store", err)
		}
	}()

	// Change feed
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Initialize services
	retailerService := service.NewRetailerService(retailerRepo, service.WithEventPublisher(hub))

	// Optional snapshot job
	var snapshotScheduler *scheduler.SnapshotScheduler
	if cfg.Snapshot.Enabled {
		uploader, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", err)
		}
		snapshotService := service.NewSnapshotService(retailerRepo, uploader, cfg.Snapshot.Prefix)
		snapshotScheduler = scheduler.NewSnapshotScheduler(snapshotService, cfg.Snapshot.Schedule)
		if err := snapshotScheduler.Start(); err != nil {
			logger.Fatal("Failed to start snapshot scheduler", err)
		}
	}

	// Initialize controllers
	retailerController := controller.NewRetailerController(retailerService)
	feedController := controller.NewFeedController(hub, cfg.CORS.AllowedOrigins)

	// Setup router
	engine := router.NewRouter(retailerController, feedController, cfg).Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", logger.Fields{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	if snapshotScheduler != nil {
		snapshotScheduler.Stop()
	}

	logger.Info("Server stopped successfully")
}
