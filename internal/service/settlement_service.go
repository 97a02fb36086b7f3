package service

import (
	"context"

	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/internal/core/ports"

	"github.com/rs/zerolog"
)

// settlementService implements ports.SettlementService.
//
// The pipeline is linear with no internal retries: verify, filter, extract,
// settle, acknowledge. Delivery retries belong to the processor and are
// driven by non-2xx responses.
type settlementService struct {
	verifier ports.WebhookVerifier
	records  ports.RecordStore
	log      zerolog.Logger
}

// NewSettlementService creates the webhook verifier & settler.
func NewSettlementService(verifier ports.WebhookVerifier, records ports.RecordStore, log zerolog.Logger) ports.SettlementService {
	return &settlementService{verifier: verifier, records: records, log: log}
}

// HandleWebhook processes one inbound event. No record is touched before
// the signature over the raw payload checks out.
func (s *settlementService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		s.log.Warn().Err(err).Msg("webhook rejected")
		return err
	}

	if !event.Completed() {
		s.log.Debug().Str("type", event.Type).Msg("ignoring webhook event type")
		return nil
	}

	sess := event.Session
	if sess.CorrelationID == "" {
		// The session was created without our metadata, so there is no
		// record to settle against. Redelivery cannot fix that, so the
		// event is acknowledged and only logged.
		s.log.Error().
			Str("payment_intent", sess.PaymentIntentID).
			Msg("completed session carries no correlation id, acknowledging without settlement")
		return nil
	}

	if err := s.records.MarkPaid(ctx, sess.CorrelationID, domain.SettlementFrom(sess)); err != nil {
		s.log.Error().Err(err).Str("doc_id", sess.CorrelationID).Msg("settlement failed")
		return err
	}

	s.log.Info().
		Str("doc_id", sess.CorrelationID).
		Str("payment_intent", sess.PaymentIntentID).
		Int64("amount_total", sess.AmountTotal).
		Str("currency", sess.Currency).
		Msg("payment settled")
	return nil
}
