package ports

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
)

// --- Service Ports (Business Logic) ---

// CheckoutService creates hosted checkout sessions.
type CheckoutService interface {
	// CreateCheckoutSession validates the request and asks the payment
	// processor for a hosted session. Single attempt, no retry — the
	// caller retries by issuing a new request.
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
}

// SettlementService verifies inbound webhook events and records confirmed
// payments.
type SettlementService interface {
	// HandleWebhook verifies the signature over the raw, unparsed body,
	// then settles completed checkout sessions. A nil return means the
	// processor should be acknowledged with 2xx; a non-nil return maps to
	// a non-2xx status and drives at-least-once redelivery.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}
