package stripe

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// MetadataCorrelationKey is the session metadata key carrying the caller's
// correlation id through Stripe and back on the webhook. The name is part
// of the wire contract with existing callers.
const MetadataCorrelationKey = "firestoreDocId"

// Client implements ports.PaymentProcessor against the Stripe Checkout API.
// One instance is constructed at startup and shared across requests.
type Client struct {
	api *client.API
	log zerolog.Logger
}

// NewClient creates a Stripe API client bound to the given secret key.
func NewClient(secretKey string, log zerolog.Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, log: log}
}

// CreateSession creates a hosted Checkout session in single-payment mode
// with one line item of quantity 1. The correlation id is attached as
// metadata so the completed-session webhook can carry it back.
func (c *Client) CreateSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.AddMetadata(MetadataCorrelationKey, req.CorrelationID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.log.Error().Err(err).Str("price_id", req.PriceID).Msg("stripe: checkout session creation failed")
		return nil, apperror.Upstream(err)
	}

	c.log.Info().
		Str("session_id", sess.ID).
		Str("doc_id", req.CorrelationID).
		Msg("stripe: checkout session created")

	return &domain.CheckoutSession{URL: sess.URL}, nil
}
