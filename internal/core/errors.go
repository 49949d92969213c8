package core

import "errors"

// Service-layer errors. Handlers map these onto HTTP statuses; anything not
// listed here surfaces as an internal error.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidSortField = errors.New("sort field is not allowed")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")

	ErrNotBookingOwner      = errors.New("caller does not own this booking")
	ErrNotAssignedDecorator = errors.New("caller is not the decorator assigned to this booking")
	ErrNotDecorator         = errors.New("target user is not a decorator")
	ErrDecoratorUnavailable = errors.New("decorator is not available")

	ErrBookingAlreadyPaid = errors.New("booking is already paid")
	ErrInvalidSignature   = errors.New("webhook signature verification failed")
)
