package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-api/config"
	"ecommerce-api/handlers"
	"ecommerce-api/middleware"
	"ecommerce-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)
	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	logger.Info("Database connected and migrated", zap.String("driver", cfg.DBDriver))

	tokens := middleware.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(db, tokens, handlers.RestockPolicy{
		Threshold: cfg.RestockThreshold,
		Target:    cfg.RestockTarget,
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.NewRouter(h, tokens, logger),
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}
