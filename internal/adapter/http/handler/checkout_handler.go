package handler

import (
	"stripe-checkout-bridge/internal/adapter/http/dto"
	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/internal/core/ports"
	"stripe-checkout-bridge/pkg/apperror"
	"stripe-checkout-bridge/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles POST /create-checkout-session.
type CheckoutHandler struct {
	checkoutSvc ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutSvc ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

// CreateCheckoutSession binds the JSON body, delegates to the service and
// returns the hosted session URL.
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Missing parameters"))
		return
	}

	sess, err := h.checkoutSvc.CreateCheckoutSession(c.Request.Context(), domain.CheckoutRequest{
		PriceID:       req.PriceID,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		CorrelationID: req.FirestoreDocID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CheckoutResponse{CheckoutURL: sess.URL})
}
