package handler

import (
	"io"

	"stripe-checkout-bridge/internal/adapter/http/dto"
	"stripe-checkout-bridge/internal/core/ports"
	"stripe-checkout-bridge/pkg/apperror"
	"stripe-checkout-bridge/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderStripeSignature is the signing header Stripe sends with every event.
const HeaderStripeSignature = "Stripe-Signature"

// WebhookHandler handles POST /webhook.
type WebhookHandler struct {
	settlementSvc ports.SettlementService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(settlementSvc ports.SettlementService) *WebhookHandler {
	return &WebhookHandler{settlementSvc: settlementSvc}
}

// HandleWebhook reads the body as raw bytes — this route must never bind
// JSON before verification, since re-serialization breaks the signature —
// and hands payload plus signature header to the settlement service.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.WebhookError(c, apperror.Validation("cannot read request body"))
		return
	}

	if err := h.settlementSvc.HandleWebhook(c.Request.Context(), payload, c.GetHeader(HeaderStripeSignature)); err != nil {
		response.WebhookError(c, err)
		return
	}

	response.OK(c, dto.WebhookAck{Received: true})
}
