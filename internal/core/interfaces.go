package core

import (
	"context"

	"decorly-backend-go/internal/models"
)

// ListUsersParams narrows and pages the admin user listing. RequesterEmail is
// the admin making the call; their own record is always excluded.
type ListUsersParams struct {
	Role           string
	WorkStatus     string
	RequesterEmail string
	Limit          int
	Skip           int
}

// ListBookingsParams narrows, sorts and pages the authenticated booking
// listing. Order is "asc" or "desc"; empty means the default for the sort
// field.
type ListBookingsParams struct {
	Status string
	SortBy string
	Order  string
	Limit  int
	Skip   int
}

// PaymentSession is what the client needs to hand to the payment gateway
// after initiation.
type PaymentSession struct {
	TransactionID string  `json:"transactionId"`
	StoreID       string  `json:"storeId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Signature     string  `json:"signature"`
}

// UserService defines user-account operations.
type UserService interface {
	// RegisterOrTouch upserts an account by email: a new account gets the
	// default role and both timestamps; an existing one only gets its
	// last-login touched. Returns whether the account was created.
	RegisterOrTouch(ctx context.Context, email, displayName string) (*models.User, bool, error)
	// GetRole returns the caller's stored role, or "" when the email has no
	// account yet.
	GetRole(ctx context.Context, email string) (string, error)
	ListUsers(ctx context.Context, params ListUsersParams) ([]*models.User, int64, error)
	// PromoteRole sets the target's role and resets work status to
	// available. The coupling is a policy carried over from the original
	// flow; see DESIGN.md.
	PromoteRole(ctx context.Context, actorEmail, targetEmail, role string) (*models.User, error)
}

// CatalogService defines catalog and decorator-directory operations.
type CatalogService interface {
	ListDecorators(ctx context.Context) ([]*models.User, error)
	ListServices(ctx context.Context, searchText, sortBy, order string) ([]*models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	CreateService(ctx context.Context, actorEmail string, req models.CreateServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, actorEmail, serviceID string, req models.UpdateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, actorEmail, serviceID string) error
}

// BookingService defines booking lifecycle operations.
type BookingService interface {
	CreateBooking(ctx context.Context, customerEmail, customerName string, req models.CreateBookingRequest) (*models.Booking, error)
	// UpdateBooking applies the owner-facing allow-listed fields. The caller
	// must be the booking's customer; admins are exempt.
	UpdateBooking(ctx context.Context, callerEmail, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error)
	// AssignDecorator transitions the booking to assigned and the decorator
	// to in_service in one atomic store operation.
	AssignDecorator(ctx context.Context, actorEmail, bookingID, decoratorEmail string) (*models.Booking, error)
	// UpdateStatusByDecorator is the decorator-driven transition. The caller
	// must be the decorator assigned to the booking. A move into a terminal
	// status (completed or cancelled) also releases the decorator,
	// atomically.
	UpdateStatusByDecorator(ctx context.Context, decoratorEmail, bookingID, bookingStatus string) (*models.Booking, error)
	ListBookings(ctx context.Context, params ListBookingsParams) ([]*models.Booking, int64, error)
	ListCustomerBookings(ctx context.Context, customerEmail string) ([]*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	BookedServiceCounts(ctx context.Context) ([]models.ServiceBookingCount, error)
}

// PaymentService defines payment gateway operations.
type PaymentService interface {
	InitiatePayment(ctx context.Context, customerEmail, bookingID string) (*PaymentSession, error)
	// HandleWebhook verifies the gateway signature and, on a valid paid
	// confirmation, marks both the payment and its booking paid.
	HandleWebhook(ctx context.Context, req models.PaymentWebhookRequest) (*models.Payment, error)
}

// AuditService records audit trail events for privileged operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, entry models.AuditLog) error
}
