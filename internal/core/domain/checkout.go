package domain

// CheckoutRequest is a caller's purchase request. CorrelationID names the
// payment record the eventual webhook settles against; it rides on the
// Stripe session as metadata and is never interpreted by the bridge.
type CheckoutRequest struct {
	PriceID       string
	SuccessURL    string
	CancelURL     string
	CorrelationID string
}

// Valid reports whether all four required fields are present.
func (r CheckoutRequest) Valid() bool {
	return r.PriceID != "" && r.SuccessURL != "" && r.CancelURL != "" && r.CorrelationID != ""
}

// CheckoutSession is the processor-hosted payment page reference. The URL
// is the only field the caller ever sees.
type CheckoutSession struct {
	URL string
}
