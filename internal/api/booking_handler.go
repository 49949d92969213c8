package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/metrics"
	"decorly-backend-go/internal/middleware"
	"decorly-backend-go/internal/models"
)

// BookingHandler handles the booking lifecycle endpoints.
type BookingHandler struct {
	bookingService core.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs core.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// mapBookingErrorToStatus maps errors from core.BookingService to HTTP
// responses.
func mapBookingErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrBookingNotFound),
		errors.Is(err, core.ErrServiceNotFound),
		errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Details: err.Error()})
	case errors.Is(err, core.ErrNotBookingOwner),
		errors.Is(err, core.ErrNotAssignedDecorator):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied", Details: err.Error()})
	case errors.Is(err, core.ErrNotDecorator),
		errors.Is(err, core.ErrDecoratorUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Decorator cannot take this booking", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidSortField),
		errors.Is(err, core.ErrInvalidSortOrder):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters", Details: err.Error()})
	default:
		log.Printf("BookingHandler internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// CreateBooking handles POST /booking (authenticated). Payment and lifecycle
// statuses are forced server-side; the service is resolved from the catalog.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	displayName := c.GetString(middleware.ContextUserDisplayName)
	if req.CustomerName != "" {
		displayName = req.CustomerName
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), email, displayName, req)
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	metrics.IncBookingCreated()
	c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PATCH /booking/:id (authenticated). The caller must
// own the booking (admins exempt) and only the allow-listed fields are
// writable.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), email, c.Param("id"), req)
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AssignDecorator handles PATCH /booking/:id/assigned (admin). The booking
// transition and the decorator's work status move in one atomic operation.
func (h *BookingHandler) AssignDecorator(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.AssignDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	booking, err := h.bookingService.AssignDecorator(c.Request.Context(), email, c.Param("id"), req.DecoratorEmail)
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateStatus handles PATCH /services/decorators/:bookingID (decorator). A
// move into a terminal status (completed or cancelled) also releases the
// calling decorator back to available, atomically.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateStatusByDecorator(c.Request.Context(), email, c.Param("bookingID"), req.Status)
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	if booking.ServiceStatus == models.BookingCompleted {
		metrics.IncBookingCompleted()
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookings handles GET /bookings (authenticated): status filter, sort
// field/direction, limit/skip pagination, `{results, total}` shape.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if _, ok := callerEmail(c); !ok {
		return
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), core.ListBookingsParams{
		Status: c.Query("status"),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
		Limit:  intQuery(c, "limit", 0),
		Skip:   intQuery(c, "skip", 0),
	})
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, PagedResponse{Results: bookings, Total: total})
}

// ListMyBookings handles GET /user-bookings: every booking owned by the
// caller.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListCustomerBookings(c.Request.Context(), email)
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// DeleteBooking handles DELETE /booking/:id (authenticated).
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if _, ok := callerEmail(c); !ok {
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Booking deleted"})
}

// BookedServices handles GET /services/booked (public): bookings grouped by
// service name, most booked first.
func (h *BookingHandler) BookedServices(c *gin.Context) {
	counts, err := h.bookingService.BookedServiceCounts(c.Request.Context())
	if err != nil {
		mapBookingErrorToStatus(c, err)
		return
	}
	if counts == nil {
		counts = []models.ServiceBookingCount{}
	}
	c.JSON(http.StatusOK, counts)
}
