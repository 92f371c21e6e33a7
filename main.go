package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cart-pricing/app"
	"cart-pricing/db"
)

func newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewDevelopmentConfig()
	if os.Getenv("ENV") == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	envLoaded := false
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envLoaded = godotenv.Overload(".env") == nil
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if envLoaded {
		logger.Info("loaded environment variables from .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.LoadConfig()

	// Initialize application
	handler, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("❌ failed to initialize application", zap.Error(err))
	}
	defer db.CloseDB()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🚀 server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
