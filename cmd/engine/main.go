package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/applyforge/applyforge/internal/api"
	"github.com/applyforge/applyforge/internal/autofill"
	"github.com/applyforge/applyforge/internal/browser"
	"github.com/applyforge/applyforge/internal/config"
	"github.com/applyforge/applyforge/internal/observability"
	"github.com/applyforge/applyforge/internal/portal"
	"github.com/applyforge/applyforge/internal/protocol"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(string(cfg.Env), cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting ApplyForge engine",
		zap.String("version", cfg.App.Version),
		zap.String("environment", string(cfg.Env)),
	)

	metrics := observability.NewMetrics(cfg.App.Name)

	// Launch the browser
	manager, err := browser.NewManager(cfg.Browser, metrics, logger)
	if err != nil {
		logger.Fatal("Failed to launch browser", zap.Error(err))
	}
	defer manager.Close()
	logger.Info("Browser launched", zap.Bool("headless", cfg.Browser.Headless))

	// Assemble the engine
	detector := portal.NewDetector(logger)
	extractor := portal.NewExtractor(detector)
	engine := autofill.NewEngine(autofill.Config{MinConfidence: cfg.Engine.MinConfidence}, logger)
	protoHandler := protocol.NewHandler(detector, extractor, engine, metrics, logger)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Manager:    manager,
		Protocol:   protoHandler,
		Metrics:    metrics,
		Logger:     logger,
		EnableCORS: cfg.Server.EnableCORS,
		RateLimit:  cfg.RateLimit.RequestsPerMinute,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Engine API listening", zap.String("addr", cfg.Server.Addr()))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server error", zap.Error(err))

	case sig := <-shutdown:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("Graceful shutdown failed, forcing close", zap.Error(err))
			server.Close()
		}
	}
}

func initLogger(env, level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		// Fall back to basic logger
		logger, _ = zap.NewProduction()
	}

	return logger
}
