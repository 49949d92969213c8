package models

import "time"

// Payment record statuses as reported by the gateway.
const (
	PaymentInitiated = "initiated"
	PaymentConfirmed = "paid"
	PaymentFailed    = "failed"
)

// Payment is one gateway transaction against a booking. TransactionID is the
// reference handed to the gateway at initiation and echoed back by its
// webhook.
type Payment struct {
	ID            string     `json:"id" firestore:"-"` // Document ID, auto-generated
	BookingID     string     `json:"bookingId" firestore:"bookingId"`
	CustomerEmail string     `json:"customerEmail" firestore:"customerEmail"`
	Amount        float64    `json:"amount" firestore:"amount"`
	Currency      string     `json:"currency" firestore:"currency"`
	TransactionID string     `json:"transactionId" firestore:"transactionId"`
	Status        string     `json:"status" firestore:"status"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty" firestore:"paidAt,omitempty"`
}
