package service

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/internal/core/ports"
	"stripe-checkout-bridge/pkg/apperror"

	"github.com/rs/zerolog"
)

// checkoutService implements ports.CheckoutService.
type checkoutService struct {
	processor ports.PaymentProcessor
	log       zerolog.Logger
}

// NewCheckoutService creates the checkout session initiator.
func NewCheckoutService(processor ports.PaymentProcessor, log zerolog.Logger) ports.CheckoutService {
	return &checkoutService{processor: processor, log: log}
}

// CreateCheckoutSession validates the four required inputs, then delegates
// to the processor. The processor is never called for invalid input, and a
// failed call is not retried — the client retries by issuing a new request.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if !req.Valid() {
		return nil, apperror.Validation("Missing parameters")
	}

	sess, err := s.processor.CreateSession(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("doc_id", req.CorrelationID).Msg("checkout session creation failed")
		return nil, err
	}
	return sess, nil
}
