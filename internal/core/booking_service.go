package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

// bookingSortFields is the allow-list of booking sort fields.
var bookingSortFields = map[string]bool{
	"createdAt":   true,
	"date":        true,
	"serviceName": true,
	"price":       true,
}

// decoratorTransitions is the allow-list of statuses a decorator may move an
// assigned booking into. Narrower than the full lifecycle enum: pending is a
// creation-time state and never a valid target once a decorator is on the
// booking.
var decoratorTransitions = map[string]bool{
	models.BookingAssigned:  true,
	models.BookingCompleted: true,
	models.BookingCancelled: true,
}

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo  db.BookingRepository
	serviceRepo  db.ServiceRepository
	userRepo     db.UserRepository
	auditService AuditService
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(bookingRepo db.BookingRepository, serviceRepo db.ServiceRepository, userRepo db.UserRepository, auditService AuditService) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// CreateBooking creates a booking for the authenticated customer. The
// service is resolved from the catalog and its name and price copied onto
// the booking; payment and lifecycle statuses are forced to their initial
// values no matter what the caller sent.
func (s *bookingService) CreateBooking(ctx context.Context, customerEmail, customerName string, req models.CreateBookingRequest) (*models.Booking, error) {
	service, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, req.ServiceID)
		}
		return nil, fmt.Errorf("failed to resolve service '%s': %w", req.ServiceID, err)
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		Price:         service.Price,
		Date:          req.Date,
		Address:       req.Address,
		Phone:         req.Phone,
		Notes:         req.Notes,
		PaymentStatus: models.PaymentUnpaid,
		ServiceStatus: models.BookingPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = id
	return booking, nil
}

// UpdateBooking applies the owner-facing allow-listed fields. The caller
// must be the booking's customer; admins are exempt from the ownership
// check.
func (s *bookingService) UpdateBooking(ctx context.Context, callerEmail, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerEmail != callerEmail {
		if err := s.requireAdmin(ctx, callerEmail); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]interface{})
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return booking, nil
	}

	if err := s.bookingRepo.UpdateFields(ctx, bookingID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to update booking '%s': %w", bookingID, err)
	}
	return s.getBooking(ctx, bookingID)
}

// AssignDecorator transitions the booking to assigned and the decorator to
// in_service in one atomic store operation. The decorator's role and
// availability are validated inside the same transaction.
func (s *bookingService) AssignDecorator(ctx context.Context, actorEmail, bookingID, decoratorEmail string) (*models.Booking, error) {
	decorator, err := s.userRepo.GetByEmail(ctx, decoratorEmail)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, decoratorEmail)
		}
		return nil, fmt.Errorf("failed to get decorator '%s': %w", decoratorEmail, err)
	}

	if err := s.bookingRepo.AssignDecorator(ctx, bookingID, decorator); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
		case errors.Is(err, db.ErrNotDecorator):
			return nil, fmt.Errorf("%w: '%s'", ErrNotDecorator, decoratorEmail)
		case errors.Is(err, db.ErrDecoratorUnavailable):
			return nil, fmt.Errorf("%w: '%s'", ErrDecoratorUnavailable, decoratorEmail)
		}
		return nil, fmt.Errorf("failed to assign decorator to booking '%s': %w", bookingID, err)
	}

	s.recordAudit(ctx, actorEmail, models.AuditBookingAssigned, bookingID, map[string]interface{}{"decorator": decoratorEmail})
	return s.getBooking(ctx, bookingID)
}

// UpdateStatusByDecorator is the decorator-driven lifecycle transition. The
// caller must be the decorator assigned to the booking. A transition into a
// terminal status (completed or cancelled) lands both effects atomically:
// the booking shows the terminal status and the decorator goes back to
// available, so a cancellation can never leave the decorator stuck
// in_service.
func (s *bookingService) UpdateStatusByDecorator(ctx context.Context, decoratorEmail, bookingID, bookingStatus string) (*models.Booking, error) {
	if !decoratorTransitions[bookingStatus] {
		return nil, fmt.Errorf("status '%s': %w", bookingStatus, ErrInvalidStatus)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Decorator == nil || booking.Decorator.Email != decoratorEmail {
		return nil, fmt.Errorf("%w: booking '%s'", ErrNotAssignedDecorator, bookingID)
	}

	switch bookingStatus {
	case models.BookingCompleted, models.BookingCancelled:
		if err := s.bookingRepo.FinishAndRelease(ctx, bookingID, decoratorEmail, bookingStatus); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
			}
			return nil, fmt.Errorf("failed to mark booking '%s' %s: %w", bookingID, bookingStatus, err)
		}
		action := models.AuditBookingCompleted
		if bookingStatus == models.BookingCancelled {
			action = models.AuditBookingCancelled
		}
		s.recordAudit(ctx, decoratorEmail, action, bookingID, nil)
	default:
		if err := s.bookingRepo.SetStatus(ctx, bookingID, bookingStatus); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
			}
			return nil, fmt.Errorf("failed to set status on booking '%s': %w", bookingID, err)
		}
	}
	return s.getBooking(ctx, bookingID)
}

// ListBookings returns one page of bookings plus the total matching the
// filter, for the authenticated listing surface.
func (s *bookingService) ListBookings(ctx context.Context, params ListBookingsParams) ([]*models.Booking, int64, error) {
	if params.Status != "" && !models.ValidBookingStatus(params.Status) {
		return nil, 0, fmt.Errorf("status '%s': %w", params.Status, ErrInvalidStatus)
	}
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if !bookingSortFields[sortBy] {
		return nil, 0, fmt.Errorf("field '%s': %w", sortBy, ErrInvalidSortField)
	}
	descending, err := parseSortOrder(params.Order)
	if err != nil {
		return nil, 0, err
	}

	bookings, total, err := s.bookingRepo.List(ctx, db.BookingFilter{
		Status:     params.Status,
		SortBy:     sortBy,
		Descending: descending,
		Limit:      params.Limit,
		Offset:     params.Skip,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// ListCustomerBookings returns every booking owned by the given customer.
func (s *bookingService) ListCustomerBookings(ctx context.Context, customerEmail string) ([]*models.Booking, error) {
	bookings, _, err := s.bookingRepo.List(ctx, db.BookingFilter{CustomerEmail: customerEmail})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for '%s': %w", customerEmail, err)
	}
	return bookings, nil
}

// DeleteBooking removes a booking. Any authenticated user may delete; the
// original surface imposes no ownership restriction here.
func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
		}
		return fmt.Errorf("failed to delete booking '%s': %w", bookingID, err)
	}
	return nil
}

// BookedServiceCounts returns the per-service booking counts used for
// popularity display.
func (s *bookingService) BookedServiceCounts(ctx context.Context) ([]models.ServiceBookingCount, error) {
	counts, err := s.bookingRepo.CountByServiceName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booked services: %w", err)
	}
	return counts, nil
}

func (s *bookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to get booking '%s': %w", bookingID, err)
	}
	return booking, nil
}

// requireAdmin verifies the caller holds the admin role; used to let admins
// through the booking ownership check.
func (s *bookingService) requireAdmin(ctx context.Context, email string) error {
	caller, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: booking not owned by '%s'", ErrNotBookingOwner, email)
		}
		return fmt.Errorf("failed to get caller '%s': %w", email, err)
	}
	if caller.Role != models.RoleAdmin {
		return fmt.Errorf("%w: booking not owned by '%s'", ErrNotBookingOwner, email)
	}
	return nil
}

func (s *bookingService) recordAudit(ctx context.Context, actorEmail, action, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
		Timestamp:  time.Now().UTC(),
		ActorEmail: actorEmail,
		Action:     action,
		TargetType: "BOOKING",
		TargetID:   targetID,
		Details:    details,
	})
}
