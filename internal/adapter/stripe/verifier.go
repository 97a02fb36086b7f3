package stripe

import (
	"encoding/json"
	"errors"

	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/pkg/apperror"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Verifier implements ports.WebhookVerifier using Stripe's signed-event
// scheme (HMAC-SHA256 over "t=<ts>.<payload>" in the Stripe-Signature
// header).
type Verifier struct {
	secret string
}

// NewVerifier creates a verifier bound to the endpoint's signing secret.
func NewVerifier(webhookSecret string) *Verifier {
	return &Verifier{secret: webhookSecret}
}

// VerifyEvent validates sigHeader against the raw payload bytes. The bytes
// must be exactly as received: parsing and re-serializing before this call
// invalidates the signature. API version mismatches are ignored because the
// bridge reads only fields that are stable across versions.
func (v *Verifier) VerifyEvent(payload []byte, sigHeader string) (*domain.CheckoutEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, apperror.SignatureInvalid(err)
	}

	out := &domain.CheckoutEvent{Type: string(event.Type)}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		// Unknown or uninteresting types are acknowledged upstream, so the
		// session payload is left empty.
		return out, nil
	}

	if event.Data == nil {
		return nil, apperror.MalformedEvent(errors.New("event carries no data object"))
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, apperror.MalformedEvent(err)
	}

	out.Session = domain.SessionPayload{
		CorrelationID: sess.Metadata[MetadataCorrelationKey],
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}
	if sess.PaymentIntent != nil {
		out.Session.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out, nil
}
