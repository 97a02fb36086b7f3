package ports

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
)

// --- Provider Ports (External Collaborators) ---

// PaymentProcessor is the outbound interface to the payment provider's
// checkout subsystem.
type PaymentProcessor interface {
	// CreateSession creates a hosted single-payment session with one line
	// item of quantity 1, attaching the correlation id as opaque metadata
	// so it survives the round trip to the webhook.
	CreateSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
}

// WebhookVerifier authenticates inbound webhook payloads.
type WebhookVerifier interface {
	// VerifyEvent validates the signature header against the raw request
	// bytes and returns the decoded event. The payload must not have been
	// parsed or re-serialized before this call.
	VerifyEvent(payload []byte, signatureHeader string) (*domain.CheckoutEvent, error)
}

// RecordStore persists payment confirmations against existing records.
type RecordStore interface {
	// MarkPaid updates (never creates) the record at docID with the
	// settlement fields, isPaid=true and a server-assigned paidAt
	// timestamp. Updating a non-existent record is an error.
	MarkPaid(ctx context.Context, docID string, s domain.Settlement) error
}
