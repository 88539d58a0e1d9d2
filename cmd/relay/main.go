package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"partycards/internal/config"
	"partycards/internal/logging"
	"partycards/internal/relay"
	httpTransport "partycards/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	logger := logging.New(cfg.Logging)
	logger = logger.With("service", "relay")

	secret := cfg.Relay.TokenSecret
	if secret == "" {
		if cfg.IsProduction() {
			logger.Error("TOKEN_SECRET is required in production")
			os.Exit(1)
		}
		secret = uuid.NewString()
		logger.Warn("TOKEN_SECRET not set, using a random secret for this process")
	}

	logger.Info("starting relay server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"maxPeersPerRoom", cfg.Relay.MaxPeersPerRoom,
	)

	// Create room hub
	hub := relay.NewHub(relay.HubConfig{
		MaxMembers:       cfg.Relay.MaxPeersPerRoom,
		StaleRoomTimeout: cfg.Relay.StaleRoomTimeout,
	}, relay.NewTokenIssuer(secret, cfg.Relay.TokenTTL), logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
