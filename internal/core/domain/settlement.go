package domain

// EventCheckoutCompleted is the only webhook event type that triggers
// settlement. Every other type is acknowledged without side effects.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutEvent is a webhook event after signature verification, reduced to
// the subset the bridge consumes.
type CheckoutEvent struct {
	Type    string
	Session SessionPayload
}

// Completed reports whether this event should trigger settlement.
func (e CheckoutEvent) Completed() bool {
	return e.Type == EventCheckoutCompleted
}

// SessionPayload is the slice of a Stripe Checkout session carried by a
// completed event.
type SessionPayload struct {
	CorrelationID   string // from session metadata; empty if never attached
	PaymentIntentID string
	PaymentStatus   string
	AmountTotal     int64
	Currency        string
}

// Settlement is the set of fields written to the payment record. Writes are
// field-overwriting, so redelivering the same event is idempotent.
type Settlement struct {
	PaymentID     string
	PaymentStatus string
	Amount        int64
	Currency      string
}

// SettlementFrom builds the record update from a verified session payload.
func SettlementFrom(s SessionPayload) Settlement {
	return Settlement{
		PaymentID:     s.PaymentIntentID,
		PaymentStatus: s.PaymentStatus,
		Amount:        s.AmountTotal,
		Currency:      s.Currency,
	}
}
