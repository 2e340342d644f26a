package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartsync/backend/internal/infrastructure/config"
	"github.com/cartsync/backend/internal/infrastructure/logger"
	"github.com/cartsync/backend/internal/infrastructure/orderdesk"
	"github.com/cartsync/backend/internal/interfaces/http/handler"
	"github.com/cartsync/backend/internal/interfaces/http/middleware"
	"github.com/cartsync/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting cart sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Construct the OrderDesk adapter. Credential resolution is fatal here:
	// the service must not come up without a usable datastore.
	store, err := orderdesk.NewOrderDeskAdapter(&orderdesk.OrderDeskConfig{
		Credentials:    cfg.OrderDesk.Credentials,
		StoreID:        cfg.OrderDesk.StoreID,
		APIKey:         cfg.OrderDesk.APIKey,
		APIBaseURL:     cfg.OrderDesk.APIBaseURL,
		TimeoutSeconds: cfg.OrderDesk.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to initialize OrderDesk datastore", zap.Error(err))
	}
	log.Info("Datastore ready",
		zap.String("source", store.Source()),
		zap.String("store_id", store.Credentials().ID),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(cfg.App.Name, store.Source()))
	r.Register(handler.NewItemHandler(store))
	r.RegisterRoot(handler.NewCheckoutWebhookHandler(store))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
