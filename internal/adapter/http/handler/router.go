package handler

import (
	"stripe-checkout-bridge/internal/adapter/http/middleware"
	"stripe-checkout-bridge/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// checkoutBodyLimit bounds the JSON routes.
	checkoutBodyLimit = 1 << 20 // 1 MiB
	// webhookBodyLimit bounds raw event payloads; Stripe checkout events
	// fit comfortably under 64 KiB.
	webhookBodyLimit = 64 << 10
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CheckoutSvc    ports.CheckoutService
	SettlementSvc  ports.SettlementService
	HealthCheckers []ports.HealthChecker
	AllowedOrigins []string // nil or ["*"] = allow all
	Mode           string   // gin mode: debug, release, test
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
// Body handling is configured per route: the webhook route preserves raw
// bytes for signature verification while the checkout route binds JSON.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	// Health check (deep — verifies Firestore)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	checkoutHandler := NewCheckoutHandler(deps.CheckoutSvc)
	webhookHandler := NewWebhookHandler(deps.SettlementSvc)

	r.POST("/create-checkout-session",
		middleware.MaxBodySize(checkoutBodyLimit),
		checkoutHandler.CreateCheckoutSession,
	)
	r.POST("/webhook",
		middleware.MaxBodySize(webhookBodyLimit),
		webhookHandler.HandleWebhook,
	)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
