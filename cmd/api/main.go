package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stripe-checkout-bridge/config"
	fsAdapter "stripe-checkout-bridge/internal/adapter/firestore"
	httpHandler "stripe-checkout-bridge/internal/adapter/http/handler"
	stripeAdapter "stripe-checkout-bridge/internal/adapter/stripe"
	"stripe-checkout-bridge/internal/core/ports"
	"stripe-checkout-bridge/internal/service"
	"stripe-checkout-bridge/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Stripe Checkout Bridge")

	ctx := context.Background()

	// Process-wide clients: constructed once, shared across requests.
	stripeClient := stripeAdapter.NewClient(cfg.Stripe.SecretKey, log)
	verifier := stripeAdapter.NewVerifier(cfg.Stripe.WebhookSecret)

	fsClient, err := fsAdapter.NewClient(ctx, cfg.Firestore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Firestore")
	}
	defer fsClient.Close()
	log.Info().Str("project_id", cfg.Firestore.ProjectID).Msg("Firestore connected")

	recordStore := fsAdapter.NewRecordStore(fsClient, cfg.Firestore.Collection)

	// Core services
	checkoutSvc := service.NewCheckoutService(stripeClient, log)
	settlementSvc := service.NewSettlementService(verifier, recordStore, log)

	// Health checkers
	fsHealth := fsAdapter.NewHealthCheck(fsClient)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CheckoutSvc:    checkoutSvc,
		SettlementSvc:  settlementSvc,
		HealthCheckers: []ports.HealthChecker{fsHealth},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
