package models

import "time"

// RegisterUserRequest is the body of the register-or-touch endpoint. The
// endpoint is unauthenticated and trusts the supplied email, matching the
// sign-in flow where the client has just completed identity verification.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName,omitempty"`
}

// PromoteRoleRequest sets a user's role. Role membership is validated in the
// service layer against the role enum.
type PromoteRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateServiceRequest represents the body for creating a catalog entry.
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageURL,omitempty"`
}

// UpdateServiceRequest represents the body for updating a catalog entry.
// Pointers distinguish "clear this field" from "field not provided"; only the
// fields listed here can be changed, never an arbitrary body merge.
type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageURL,omitempty"`
}

// CreateBookingRequest represents the body for creating a booking. Price and
// service name are resolved from the catalog server-side; payment and
// lifecycle statuses are forced regardless of anything the caller sends.
type CreateBookingRequest struct {
	ServiceID    string     `json:"serviceId" binding:"required"`
	CustomerName string     `json:"customerName,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// UpdateBookingRequest is the owner-facing booking update. Statuses and the
// decorator assignment are deliberately absent; those move through their own
// endpoints.
type UpdateBookingRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	Address *string    `json:"address,omitempty"`
	Phone   *string    `json:"phone,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// AssignDecoratorRequest names the decorator an admin assigns to a booking.
type AssignDecoratorRequest struct {
	DecoratorEmail string `json:"decoratorEmail" binding:"required,email"`
}

// UpdateBookingStatusRequest is the decorator-driven status transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InitiatePaymentRequest starts a gateway session for a booking.
type InitiatePaymentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// PaymentWebhookRequest is the gateway's confirmation callback. Signature is
// an HMAC over the transaction ID and status, verified against the
// configured gateway key before anything is mutated.
type PaymentWebhookRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
}
