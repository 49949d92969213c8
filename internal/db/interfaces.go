package db

import (
	"context"
	"time"

	"decorly-backend-go/internal/models"
)

// UserFilter narrows and pages a user listing. Zero values mean "no filter".
type UserFilter struct {
	Role         string
	WorkStatus   string
	ExcludeEmail string // the requesting admin's own record is never listed
	Limit        int
	Offset       int
}

// ServiceQuery shapes a catalog listing. SortBy must already be validated
// against the catalog sort allow-list by the caller.
type ServiceQuery struct {
	SearchText string // case-insensitive substring match on name
	SortBy     string
	Descending bool
}

// BookingFilter narrows, sorts and pages a booking listing.
type BookingFilter struct {
	Status        string
	CustomerEmail string
	SortBy        string
	Descending    bool
	Limit         int
	Offset        int
}

// UserRepository defines user data storage operations.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// TouchLastLogin updates only the last-login timestamp of an existing
	// user; role and other fields are untouched.
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
	// SetRole sets the role and work status together; the two always move as
	// one write.
	SetRole(ctx context.Context, email, role, workStatus string) error
	SetWorkStatus(ctx context.Context, email, workStatus string) error
	// List returns one page of users plus the total count matching the
	// filter independent of pagination.
	List(ctx context.Context, filter UserFilter) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
}

// ServiceRepository defines catalog data storage operations.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) (string, error)
	GetByID(ctx context.Context, serviceID string) (*models.Service, error)
	List(ctx context.Context, query ServiceQuery) ([]*models.Service, error)
	// UpdateFields applies an already allow-listed set of field updates.
	UpdateFields(ctx context.Context, serviceID string, fields map[string]interface{}) error
	Delete(ctx context.Context, serviceID string) error
}

// BookingRepository defines booking data storage operations, including the
// two cross-collection transitions that touch a decorator's work status.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (string, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]*models.Booking, int64, error)
	UpdateFields(ctx context.Context, bookingID string, fields map[string]interface{}) error
	// AssignDecorator atomically marks the booking assigned, records the
	// decorator identity on it, and flips the decorator to in_service.
	AssignDecorator(ctx context.Context, bookingID string, decorator *models.User) error
	SetStatus(ctx context.Context, bookingID, status string) error
	// FinishAndRelease atomically moves the booking into a terminal status
	// (completed or cancelled) and releases the decorator back to available.
	FinishAndRelease(ctx context.Context, bookingID, decoratorEmail, bookingStatus string) error
	Delete(ctx context.Context, bookingID string) error
	// CountByServiceName groups all bookings by service name for the
	// popularity aggregate.
	CountByServiceName(ctx context.Context) ([]models.ServiceBookingCount, error)
}

// PaymentRepository defines payment record storage operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (string, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	MarkPaid(ctx context.Context, transactionID string, at time.Time) error
	// MarkFailed flips the payment to failed after a definitive gateway
	// failure callback.
	MarkFailed(ctx context.Context, transactionID string) error
}

// AuditRepository defines audit log storage operations.
type AuditRepository interface {
	Create(ctx context.Context, entry models.AuditLog) error
}
