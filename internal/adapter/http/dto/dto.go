package dto

// CheckoutRequest is the request body for POST /create-checkout-session.
// The field names are the wire contract with existing callers.
type CheckoutRequest struct {
	PriceID        string `json:"priceId" binding:"required"`
	SuccessURL     string `json:"successUrl" binding:"required"`
	CancelURL      string `json:"cancelUrl" binding:"required"`
	FirestoreDocID string `json:"firestoreDocId" binding:"required"`
}

// CheckoutResponse is the response body for a created session.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// WebhookAck is the response body acknowledging a processed webhook.
type WebhookAck struct {
	Received bool `json:"received"`
}
