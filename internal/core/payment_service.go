package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"decorly-backend-go/internal/config"
	"decorly-backend-go/internal/crypto"
	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

// paymentCurrency is the only currency the gateway account is configured
// for.
const paymentCurrency = "USD"

// gatewayPaidStatus is the status string the gateway sends on a successful
// charge.
const gatewayPaidStatus = "VALID"

// paymentService implements the PaymentService interface against the
// configured payment gateway. Sessions are signed with the gateway's shared
// signature key and the webhook must carry a matching signature before
// anything is mutated.
type paymentService struct {
	paymentRepo  db.PaymentRepository
	bookingRepo  db.BookingRepository
	auditService AuditService
	storeID      string
	signatureKey []byte
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(paymentRepo db.PaymentRepository, bookingRepo db.BookingRepository, auditService AuditService, appConfig *config.Config) (PaymentService, error) {
	if appConfig == nil {
		return nil, errors.New("appConfig is required for PaymentService")
	}
	if appConfig.PaymentGatewayStoreID == "" || appConfig.PaymentGatewaySignatureKey == "" {
		return nil, errors.New("payment gateway store ID and signature key are required")
	}
	return &paymentService{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		auditService: auditService,
		storeID:      appConfig.PaymentGatewayStoreID,
		signatureKey: []byte(appConfig.PaymentGatewaySignatureKey),
	}, nil
}

// webhookPayload is the canonical string both sides sign: transaction ID and
// gateway status, joined the way the gateway documents it.
func webhookPayload(transactionID, gatewayStatus string) string {
	return strings.Join([]string{transactionID, gatewayStatus}, "|")
}

// InitiatePayment opens a gateway session for an unpaid booking owned by the
// caller. The returned session carries everything the client hands to the
// gateway checkout, including our signature over the transaction reference.
func (s *paymentService) InitiatePayment(ctx context.Context, customerEmail, bookingID string) (*PaymentSession, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to get booking '%s': %w", bookingID, err)
	}
	if booking.CustomerEmail != customerEmail {
		return nil, fmt.Errorf("%w: booking '%s'", ErrNotBookingOwner, bookingID)
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return nil, fmt.Errorf("%w: booking '%s'", ErrBookingAlreadyPaid, bookingID)
	}

	transactionID := uuid.NewString()
	payment := &models.Payment{
		BookingID:     booking.ID,
		CustomerEmail: customerEmail,
		Amount:        booking.Price,
		Currency:      paymentCurrency,
		TransactionID: transactionID,
		Status:        models.PaymentInitiated,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment for booking '%s': %w", bookingID, err)
	}

	signature, err := crypto.SignPayload(s.signatureKey, webhookPayload(transactionID, gatewayPaidStatus))
	if err != nil {
		return nil, fmt.Errorf("failed to sign payment session: %w", err)
	}
	return &PaymentSession{
		TransactionID: transactionID,
		StoreID:       s.storeID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Signature:     signature,
	}, nil
}

// HandleWebhook processes the gateway's confirmation callback. The signature
// is verified before any lookup; on a valid paid confirmation both the
// payment record and its booking are marked paid, and on a verified failure
// the payment record is marked failed.
func (s *paymentService) HandleWebhook(ctx context.Context, req models.PaymentWebhookRequest) (*models.Payment, error) {
	if !crypto.VerifyPayload(s.signatureKey, webhookPayload(req.TransactionID, req.Status), req.Signature) {
		return nil, fmt.Errorf("transaction '%s': %w", req.TransactionID, ErrInvalidSignature)
	}

	payment, err := s.paymentRepo.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction '%s'", ErrPaymentNotFound, req.TransactionID)
		}
		return nil, fmt.Errorf("failed to get payment for transaction '%s': %w", req.TransactionID, err)
	}

	if req.Status != gatewayPaidStatus {
		// Failed or cancelled charge: record it on the payment so the
		// transaction cannot be replayed as pending. The booking stays
		// unpaid and the client may initiate again.
		if err := s.paymentRepo.MarkFailed(ctx, req.TransactionID); err != nil {
			return nil, fmt.Errorf("failed to mark payment failed for transaction '%s': %w", req.TransactionID, err)
		}
		payment.Status = models.PaymentFailed
		return payment, nil
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.MarkPaid(ctx, req.TransactionID, now); err != nil {
		return nil, fmt.Errorf("failed to mark payment paid for transaction '%s': %w", req.TransactionID, err)
	}
	if err := s.bookingRepo.UpdateFields(ctx, payment.BookingID, map[string]interface{}{
		"paymentStatus": models.PaymentPaid,
	}); err != nil {
		return nil, fmt.Errorf("failed to mark booking '%s' paid: %w", payment.BookingID, err)
	}

	if s.auditService != nil {
		_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
			Timestamp:  now,
			ActorEmail: payment.CustomerEmail,
			Action:     models.AuditPaymentConfirmed,
			TargetType: "BOOKING",
			TargetID:   payment.BookingID,
			Details:    map[string]interface{}{"transactionId": req.TransactionID, "amount": payment.Amount},
		})
	}

	payment.Status = models.PaymentConfirmed
	payment.PaidAt = &now
	return payment, nil
}
