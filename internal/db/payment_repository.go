package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"decorly-backend-go/internal/models"
)

const paymentsCollection = "payments"

// firestorePaymentRepository implements the PaymentRepository interface using
// Firestore. Payment documents are looked up by the gateway transaction
// reference, which is what the webhook echoes back.
type firestorePaymentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentRepository creates a new instance of firestorePaymentRepository.
func NewFirestorePaymentRepository(client *firestore.Client) PaymentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PaymentRepository.")
	}
	return &firestorePaymentRepository{client: client}
}

// Create adds a new payment document with an auto-generated ID.
func (r *firestorePaymentRepository) Create(ctx context.Context, payment *models.Payment) (string, error) {
	docRef := r.client.Collection(paymentsCollection).NewDoc()
	payment.ID = docRef.ID
	_, err := docRef.Create(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}
	return docRef.ID, nil
}

// GetByTransactionID retrieves the payment carrying the given gateway
// transaction reference.
func (r *firestorePaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	if transactionID == "" {
		return nil, errors.New("transactionID cannot be empty for GetByTransactionID operation")
	}
	iter := r.client.Collection(paymentsCollection).
		Where("transactionId", "==", transactionID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("payment with transaction '%s' not found: %w", transactionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query payment by transaction '%s': %w", transactionID, err)
	}

	var payment models.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment data for transaction '%s': %w", transactionID, err)
	}
	payment.ID = doc.Ref.ID
	return &payment, nil
}

// MarkPaid flips the payment to paid and stamps the confirmation time.
func (r *firestorePaymentRepository) MarkPaid(ctx context.Context, transactionID string, at time.Time) error {
	payment, err := r.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}
	_, err = r.client.Collection(paymentsCollection).Doc(payment.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: models.PaymentConfirmed},
		{Path: "paidAt", Value: at},
	})
	if err != nil {
		return fmt.Errorf("failed to mark payment '%s' paid: %w", payment.ID, err)
	}
	return nil
}

// MarkFailed records that the gateway reported a definitive failure for the
// transaction. The booking is untouched; the customer may initiate a fresh
// payment.
func (r *firestorePaymentRepository) MarkFailed(ctx context.Context, transactionID string) error {
	payment, err := r.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}
	_, err = r.client.Collection(paymentsCollection).Doc(payment.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: models.PaymentFailed},
	})
	if err != nil {
		return fmt.Errorf("failed to mark payment '%s' failed: %w", payment.ID, err)
	}
	return nil
}
