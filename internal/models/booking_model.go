package models

import "time"

// Booking lifecycle statuses. A booking moves
// pending -> assigned -> completed; cancellation is terminal from either of
// the first two states.
const (
	BookingPending   = "pending"
	BookingAssigned  = "assigned"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment statuses on a booking.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// ValidBookingStatus reports whether status is a known lifecycle value.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingAssigned, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// DecoratorRef is the denormalized identity of the decorator assigned to a
// booking. Set atomically with the transition to BookingAssigned.
type DecoratorRef struct {
	ID    string `json:"id" firestore:"id"`
	Name  string `json:"name,omitempty" firestore:"name,omitempty"`
	Email string `json:"email" firestore:"email"`
}

// Booking links a customer (by verified email) to a catalog service.
// ServiceName and Price are copied from the catalog at creation time so the
// record stays meaningful if the service is later edited or deleted.
type Booking struct {
	ID            string        `json:"id" firestore:"-"` // Document ID, auto-generated
	CustomerEmail string        `json:"customerEmail" firestore:"customerEmail"`
	CustomerName  string        `json:"customerName,omitempty" firestore:"customerName,omitempty"`
	ServiceID     string        `json:"serviceId" firestore:"serviceId"`
	ServiceName   string        `json:"serviceName" firestore:"serviceName"`
	Price         float64       `json:"price" firestore:"price"`
	Date          *time.Time    `json:"date,omitempty" firestore:"date,omitempty"`
	Address       string        `json:"address,omitempty" firestore:"address,omitempty"`
	Phone         string        `json:"phone,omitempty" firestore:"phone,omitempty"`
	Notes         string        `json:"notes,omitempty" firestore:"notes,omitempty"`
	PaymentStatus string        `json:"paymentStatus" firestore:"paymentStatus"`
	ServiceStatus string        `json:"serviceStatus" firestore:"serviceStatus"`
	Decorator     *DecoratorRef `json:"decorator,omitempty" firestore:"decorator,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" firestore:"updatedAt"`
}

// ServiceBookingCount is one row of the popularity aggregate: how many
// bookings name a given service.
type ServiceBookingCount struct {
	ServiceName string `json:"serviceName"`
	Count       int64  `json:"count"`
}
