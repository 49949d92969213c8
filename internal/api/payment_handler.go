package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/models"
)

// PaymentHandler handles payment gateway endpoints.
type PaymentHandler struct {
	paymentService core.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps core.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// mapPaymentErrorToStatus maps errors from core.PaymentService to HTTP
// responses.
func mapPaymentErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrBookingNotFound), errors.Is(err, core.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Details: err.Error()})
	case errors.Is(err, core.ErrNotBookingOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied", Details: err.Error()})
	case errors.Is(err, core.ErrBookingAlreadyPaid):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Booking is already paid", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidSignature):
		// The gateway gets no detail beyond the rejection.
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Webhook signature verification failed"})
	default:
		log.Printf("PaymentHandler internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// InitiatePayment handles POST /payments/initiate (authenticated). Opens a
// gateway session for an unpaid booking owned by the caller.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	session, err := h.paymentService.InitiatePayment(c.Request.Context(), email, req.BookingID)
	if err != nil {
		mapPaymentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// HandleWebhook handles POST /payments/webhook. Public: the gateway
// authenticates through the HMAC signature carried in the body, verified in
// the service before anything is mutated.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	var req models.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	payment, err := h.paymentService.HandleWebhook(c.Request.Context(), req)
	if err != nil {
		mapPaymentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
