package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/models"
)

func TestInitiatePaymentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("OpensSession", func(t *testing.T) {
		svc := new(mockPaymentService)
		svc.On("InitiatePayment", mock.Anything, "cust@example.com", "b1").
			Return(&core.PaymentSession{
				TransactionID: "tx-1",
				StoreID:       "decorly-store",
				Amount:        150,
				Currency:      "USD",
				Signature:     "abc123",
			}, nil)

		router := gin.New()
		router.POST("/payments/initiate", asCaller("cust@example.com"), NewPaymentHandler(svc).InitiatePayment)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/initiate",
			strings.NewReader(`{"bookingId":"b1"}`)))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"transactionId":"tx-1"`)
	})

	t.Run("AlreadyPaidIs409", func(t *testing.T) {
		svc := new(mockPaymentService)
		svc.On("InitiatePayment", mock.Anything, "cust@example.com", "b1").
			Return(nil, core.ErrBookingAlreadyPaid)

		router := gin.New()
		router.POST("/payments/initiate", asCaller("cust@example.com"), NewPaymentHandler(svc).InitiatePayment)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/initiate",
			strings.NewReader(`{"bookingId":"b1"}`)))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ForeignBookingIs403", func(t *testing.T) {
		svc := new(mockPaymentService)
		svc.On("InitiatePayment", mock.Anything, "other@example.com", "b1").
			Return(nil, core.ErrNotBookingOwner)

		router := gin.New()
		router.POST("/payments/initiate", asCaller("other@example.com"), NewPaymentHandler(svc).InitiatePayment)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/initiate",
			strings.NewReader(`{"bookingId":"b1"}`)))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandleWebhookHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ValidConfirmation", func(t *testing.T) {
		svc := new(mockPaymentService)
		svc.On("HandleWebhook", mock.Anything, models.PaymentWebhookRequest{
			TransactionID: "tx-1",
			Status:        "VALID",
			Signature:     "abc123",
		}).Return(&models.Payment{ID: "p1", TransactionID: "tx-1", Status: models.PaymentConfirmed}, nil)

		router := gin.New()
		router.POST("/payments/webhook", NewPaymentHandler(svc).HandleWebhook)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/webhook",
			strings.NewReader(`{"transactionId":"tx-1","status":"VALID","signature":"abc123"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), models.PaymentConfirmed)
	})

	t.Run("BadSignatureIs400WithoutDetail", func(t *testing.T) {
		svc := new(mockPaymentService)
		svc.On("HandleWebhook", mock.Anything, mock.Anything).Return(nil, core.ErrInvalidSignature)

		router := gin.New()
		router.POST("/payments/webhook", NewPaymentHandler(svc).HandleWebhook)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/webhook",
			strings.NewReader(`{"transactionId":"tx-1","status":"VALID","signature":"bad"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), "details")
	})

	t.Run("IncompleteBodyIs400", func(t *testing.T) {
		svc := new(mockPaymentService)
		router := gin.New()
		router.POST("/payments/webhook", NewPaymentHandler(svc).HandleWebhook)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payments/webhook",
			strings.NewReader(`{"transactionId":"tx-1"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything)
	})
}
