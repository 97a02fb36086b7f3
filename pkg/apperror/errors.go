package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses. Message is
// what the caller may see; Err carries the internal cause for logs only.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Checkout (CHK) ----

// Validation reports missing or malformed client input. The message is
// echoed to the caller.
func Validation(message string) *AppError {
	return New("CHK_001", message, http.StatusBadRequest)
}

// Upstream reports a failed payment-processor call. The upstream message is
// passed through to the caller per the bridge's contract.
func Upstream(err error) *AppError {
	return Wrap("CHK_002", err.Error(), http.StatusInternalServerError, err)
}

// ---- Webhook (HOOK) ----

// SignatureInvalid reports a webhook authenticity failure. The message is
// deliberately generic; the cause stays in logs.
func SignatureInvalid(err error) *AppError {
	return Wrap("HOOK_001", "signature verification failed", http.StatusBadRequest, err)
}

// MalformedEvent reports a verified event whose payload could not be
// decoded. Redelivery would carry the same bytes, so it maps to 400.
func MalformedEvent(err error) *AppError {
	return Wrap("HOOK_002", "malformed event payload", http.StatusBadRequest, err)
}

// ---- Record store (STORE) ----

// Persistence reports a failed record-store update. Maps to 500 with no
// detail leaked, so the processor redelivers.
func Persistence(err error) *AppError {
	return Wrap("STORE_001", "record update failed", http.StatusInternalServerError, err)
}

// RecordNotFound reports a settlement against a record that does not exist.
// The bridge never creates records, so this also maps to 500.
func RecordNotFound(docID string) *AppError {
	return New("STORE_002", fmt.Sprintf("record %s not found", docID), http.StatusInternalServerError)
}
