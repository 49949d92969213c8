package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"decorly-backend-go/internal/config"
	"decorly-backend-go/internal/crypto"
	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

const testSignatureKey = "decorly-test-signature-key-32ch!"

func newTestPaymentService(t *testing.T, paymentRepo db.PaymentRepository, bookingRepo db.BookingRepository, audit AuditService) PaymentService {
	t.Helper()
	svc, err := NewPaymentService(paymentRepo, bookingRepo, audit, &config.Config{
		PaymentGatewayStoreID:      "decorly-store",
		PaymentGatewaySignatureKey: testSignatureKey,
	})
	require.NoError(t, err)
	return svc
}

func TestNewPaymentService(t *testing.T) {
	t.Run("RequiresGatewayConfig", func(t *testing.T) {
		_, err := NewPaymentService(nil, nil, nil, &config.Config{})
		assert.Error(t, err)
	})

	t.Run("RequiresConfig", func(t *testing.T) {
		_, err := NewPaymentService(nil, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestInitiatePayment(t *testing.T) {
	ctx := context.Background()
	unpaid := func() *models.Booking {
		return &models.Booking{
			ID:            "b1",
			CustomerEmail: "cust@example.com",
			Price:         150,
			PaymentStatus: models.PaymentUnpaid,
		}
	}

	t.Run("OpensSignedSession", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		bookingRepo.On("GetByID", ctx, "b1").Return(unpaid(), nil).Once()
		paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Payment) bool {
			return p.BookingID == "b1" &&
				p.Status == models.PaymentInitiated &&
				p.Amount == 150 &&
				p.TransactionID != ""
		})).Return("p1", nil).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		session, err := svc.InitiatePayment(ctx, "cust@example.com", "b1")
		require.NoError(t, err)
		assert.Equal(t, "decorly-store", session.StoreID)
		assert.Equal(t, 150.0, session.Amount)
		assert.NotEmpty(t, session.TransactionID)
		// The session signature must verify against the paid-confirmation
		// payload for this transaction.
		assert.True(t, crypto.VerifyPayload([]byte(testSignatureKey), session.TransactionID+"|VALID", session.Signature))
		paymentRepo.AssertExpectations(t)
	})

	t.Run("OnlyTheOwnerMayPay", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		bookingRepo.On("GetByID", ctx, "b1").Return(unpaid(), nil).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.InitiatePayment(ctx, "other@example.com", "b1")
		assert.ErrorIs(t, err, ErrNotBookingOwner)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PaidBookingIsRejected", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		paid := unpaid()
		paid.PaymentStatus = models.PaymentPaid
		bookingRepo.On("GetByID", ctx, "b1").Return(paid, nil).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.InitiatePayment(ctx, "cust@example.com", "b1")
		assert.ErrorIs(t, err, ErrBookingAlreadyPaid)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		bookingRepo.On("GetByID", ctx, "missing").Return(nil, db.ErrNotFound).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.InitiatePayment(ctx, "cust@example.com", "missing")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	sign := func(t *testing.T, transactionID, status string) string {
		t.Helper()
		signature, err := crypto.SignPayload([]byte(testSignatureKey), transactionID+"|"+status)
		require.NoError(t, err)
		return signature
	}

	t.Run("ValidConfirmationMarksPaymentAndBookingPaid", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		audit := new(mockAuditService)
		payment := &models.Payment{
			ID:            "p1",
			BookingID:     "b1",
			CustomerEmail: "cust@example.com",
			Amount:        150,
			TransactionID: "tx-1",
			Status:        models.PaymentInitiated,
		}
		paymentRepo.On("GetByTransactionID", ctx, "tx-1").Return(payment, nil).Once()
		paymentRepo.On("MarkPaid", ctx, "tx-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
		bookingRepo.On("UpdateFields", ctx, "b1", map[string]interface{}{
			"paymentStatus": models.PaymentPaid,
		}).Return(nil).Once()
		audit.On("CreateAuditLog", ctx, mock.MatchedBy(func(entry models.AuditLog) bool {
			return entry.Action == models.AuditPaymentConfirmed && entry.TargetID == "b1"
		})).Return(nil).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, audit)
		got, err := svc.HandleWebhook(ctx, models.PaymentWebhookRequest{
			TransactionID: "tx-1",
			Status:        "VALID",
			Signature:     sign(t, "tx-1", "VALID"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentConfirmed, got.Status)
		require.NotNil(t, got.PaidAt)
		paymentRepo.AssertExpectations(t)
		bookingRepo.AssertExpectations(t)
		audit.AssertExpectations(t)
	})

	t.Run("BadSignatureMutatesNothing", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.HandleWebhook(ctx, models.PaymentWebhookRequest{
			TransactionID: "tx-1",
			Status:        "VALID",
			Signature:     "deadbeef",
		})
		assert.ErrorIs(t, err, ErrInvalidSignature)
		paymentRepo.AssertNotCalled(t, "GetByTransactionID", mock.Anything, mock.Anything)
		paymentRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
		bookingRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TamperedStatusFailsVerification", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.HandleWebhook(ctx, models.PaymentWebhookRequest{
			TransactionID: "tx-1",
			Status:        "VALID",
			Signature:     sign(t, "tx-1", "FAILED"),
		})
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("FailedChargeMarksPaymentFailedAndLeavesBookingUnpaid", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		payment := &models.Payment{
			ID:            "p1",
			BookingID:     "b1",
			TransactionID: "tx-1",
			Status:        models.PaymentInitiated,
		}
		paymentRepo.On("GetByTransactionID", ctx, "tx-1").Return(payment, nil).Once()
		paymentRepo.On("MarkFailed", ctx, "tx-1").Return(nil).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		got, err := svc.HandleWebhook(ctx, models.PaymentWebhookRequest{
			TransactionID: "tx-1",
			Status:        "FAILED",
			Signature:     sign(t, "tx-1", "FAILED"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentFailed, got.Status)
		paymentRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
		bookingRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("UnknownTransaction", func(t *testing.T) {
		paymentRepo := new(mockPaymentRepo)
		bookingRepo := new(mockBookingRepo)
		paymentRepo.On("GetByTransactionID", ctx, "tx-ghost").Return(nil, db.ErrNotFound).Once()

		svc := newTestPaymentService(t, paymentRepo, bookingRepo, nil)
		_, err := svc.HandleWebhook(ctx, models.PaymentWebhookRequest{
			TransactionID: "tx-ghost",
			Status:        "VALID",
			Signature:     sign(t, "tx-ghost", "VALID"),
		})
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}
