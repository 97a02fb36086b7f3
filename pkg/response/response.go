package response

import (
	"errors"
	"net/http"

	"stripe-checkout-bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// The wire shapes here are part of the bridge's external contract: clients
// and Stripe's webhook retry loop both key off them, so there is no
// envelope beyond what each route promises.

// ErrorBody is the JSON error shape for JSON routes.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK sends a 200 response with data as-is.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends a JSON error response. *apperror.AppError supplies the status
// and caller-facing message; anything else collapses to a bare 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}

// WebhookError answers the processor on a failed webhook delivery: client
// errors get a plain-text reason, server errors an empty body. Non-2xx is
// what drives Stripe's at-least-once redelivery.
func WebhookError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError {
			c.String(appErr.HTTPStatus, "Webhook Error: %s", appErr.Message)
			return
		}
		c.Status(appErr.HTTPStatus)
		return
	}
	c.Status(http.StatusInternalServerError)
}
