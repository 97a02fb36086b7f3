package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stripe-checkout-bridge/internal/adapter/http/dto"
	"stripe-checkout-bridge/internal/core/domain"
	"stripe-checkout-bridge/internal/core/ports/mocks"
	"stripe-checkout-bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Checkout Handler Tests ---

func TestCreateCheckoutSession_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockCheckoutService(ctrl)
	h := NewCheckoutHandler(mockSvc)

	mockSvc.EXPECT().CreateCheckoutSession(gomock.Any(), domain.CheckoutRequest{
		PriceID:       "price_123",
		SuccessURL:    "https://shop.example.com/success",
		CancelURL:     "https://shop.example.com/cancel",
		CorrelationID: "doc123",
	}).Return(&domain.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_123"}, nil)

	body, _ := json.Marshal(dto.CheckoutRequest{
		PriceID:        "price_123",
		SuccessURL:     "https://shop.example.com/success",
		CancelURL:      "https://shop.example.com/cancel",
		FirestoreDocID: "doc123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateCheckoutSession(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_123", resp["checkoutUrl"])
}

func TestCreateCheckoutSession_MissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT: binding fails before the service is reached.
	mockSvc := mocks.NewMockCheckoutService(ctrl)
	h := NewCheckoutHandler(mockSvc)

	body := []byte(`{"priceId":"price_123","successUrl":"https://s","cancelUrl":"https://c"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateCheckoutSession(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing parameters", resp["error"])
}

func TestCreateCheckoutSession_UpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockCheckoutService(ctrl)
	h := NewCheckoutHandler(mockSvc)

	mockSvc.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		Return(nil, apperror.Upstream(errors.New("No such price: 'price_bad'")))

	body, _ := json.Marshal(dto.CheckoutRequest{
		PriceID:        "price_bad",
		SuccessURL:     "https://s",
		CancelURL:      "https://c",
		FirestoreDocID: "doc123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateCheckoutSession(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No such price: 'price_bad'", resp["error"])
}

// --- Webhook Handler Tests ---

func TestHandleWebhook_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewWebhookHandler(mockSvc)

	payload := []byte(`{"type":"checkout.session.completed"}`)
	mockSvc.EXPECT().
		HandleWebhook(gomock.Any(), payload, "t=1,v1=abc").
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	c.Request.Header.Set(HeaderStripeSignature, "t=1,v1=abc")

	h.HandleWebhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
}

func TestHandleWebhook_RawBodyReachesService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewWebhookHandler(mockSvc)

	// Whitespace and key order must survive untouched — re-serialization
	// would break the signature.
	payload := []byte("{ \"type\":   \"x\" ,\"b\":1}")
	mockSvc.EXPECT().
		HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []byte, _ string) error {
			assert.Equal(t, payload, got)
			return nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))

	h.HandleWebhook(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleWebhook_SignatureFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewWebhookHandler(mockSvc)

	mockSvc.EXPECT().HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.SignatureInvalid(errors.New("no valid signature")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))

	h.HandleWebhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Webhook Error: signature verification failed", w.Body.String())
}

func TestHandleWebhook_StoreFailure_EmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockSettlementService(ctrl)
	h := NewWebhookHandler(mockSvc)

	mockSvc.EXPECT().HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.Persistence(errors.New("unavailable")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))

	h.HandleWebhook(c)
	// Flush the buffered status; outside the engine nothing else writes.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String(), "store failures leak no detail to the processor")
}

// --- Router Tests ---

func TestSetupRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checkoutSvc := mocks.NewMockCheckoutService(ctrl)
	settlementSvc := mocks.NewMockSettlementService(ctrl)

	checkoutSvc.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		Return(&domain.CheckoutSession{URL: "https://checkout.stripe.com/pay/cs_1"}, nil)
	settlementSvc.EXPECT().HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	r := SetupRouter(RouterDeps{
		CheckoutSvc:   checkoutSvc,
		SettlementSvc: settlementSvc,
		Mode:          gin.TestMode,
		Logger:        zerolog.Nop(),
	})

	// Checkout route
	body := []byte(`{"priceId":"p","successUrl":"s","cancelUrl":"c","firestoreDocId":"d"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// Webhook route
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health route (no checkers configured: vacuously healthy)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_WebhookStoreFailure_Empty500(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settlementSvc := mocks.NewMockSettlementService(ctrl)
	settlementSvc.EXPECT().HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.Persistence(errors.New("unavailable")))

	r := SetupRouter(RouterDeps{
		CheckoutSvc:   mocks.NewMockCheckoutService(ctrl),
		SettlementSvc: settlementSvc,
		Mode:          gin.TestMode,
		Logger:        zerolog.Nop(),
	})

	// Through the full engine: Stripe must see a bodiless 500 so it
	// redelivers the event.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSetupRouter_WebhookBodyLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settlementSvc := mocks.NewMockSettlementService(ctrl)
	r := SetupRouter(RouterDeps{
		CheckoutSvc:   mocks.NewMockCheckoutService(ctrl),
		SettlementSvc: settlementSvc,
		Mode:          gin.TestMode,
		Logger:        zerolog.Nop(),
	})

	oversized := bytes.Repeat([]byte("a"), (64<<10)+1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(oversized))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Health Handler Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "firestore", err: errors.New("unavailable")})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
}

func TestHealthCheck_Healthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "firestore"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
