package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/middleware"
	"decorly-backend-go/internal/models"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) RegisterOrTouch(ctx context.Context, email, displayName string) (*models.User, bool, error) {
	args := m.Called(ctx, email, displayName)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}
func (m *mockUserService) GetRole(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *mockUserService) ListUsers(ctx context.Context, params core.ListUsersParams) ([]*models.User, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}
func (m *mockUserService) PromoteRole(ctx context.Context, actorEmail, targetEmail, role string) (*models.User, error) {
	args := m.Called(ctx, actorEmail, targetEmail, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) ListDecorators(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockCatalogService) ListServices(ctx context.Context, searchText, sortBy, order string) ([]*models.Service, error) {
	args := m.Called(ctx, searchText, sortBy, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}
func (m *mockCatalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockCatalogService) CreateService(ctx context.Context, actorEmail string, req models.CreateServiceRequest) (*models.Service, error) {
	args := m.Called(ctx, actorEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockCatalogService) UpdateService(ctx context.Context, actorEmail, serviceID string, req models.UpdateServiceRequest) (*models.Service, error) {
	args := m.Called(ctx, actorEmail, serviceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockCatalogService) DeleteService(ctx context.Context, actorEmail, serviceID string) error {
	return m.Called(ctx, actorEmail, serviceID).Error(0)
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBooking(ctx context.Context, customerEmail, customerName string, req models.CreateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, customerEmail, customerName, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingService) UpdateBooking(ctx context.Context, callerEmail, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, callerEmail, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingService) AssignDecorator(ctx context.Context, actorEmail, bookingID, decoratorEmail string) (*models.Booking, error) {
	args := m.Called(ctx, actorEmail, bookingID, decoratorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingService) UpdateStatusByDecorator(ctx context.Context, decoratorEmail, bookingID, bookingStatus string) (*models.Booking, error) {
	args := m.Called(ctx, decoratorEmail, bookingID, bookingStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingService) ListBookings(ctx context.Context, params core.ListBookingsParams) ([]*models.Booking, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *mockBookingService) ListCustomerBookings(ctx context.Context, customerEmail string) ([]*models.Booking, error) {
	args := m.Called(ctx, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}
func (m *mockBookingService) BookedServiceCounts(ctx context.Context) ([]models.ServiceBookingCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceBookingCount), args.Error(1)
}

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) InitiatePayment(ctx context.Context, customerEmail, bookingID string) (*core.PaymentSession, error) {
	args := m.Called(ctx, customerEmail, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.PaymentSession), args.Error(1)
}
func (m *mockPaymentService) HandleWebhook(ctx context.Context, req models.PaymentWebhookRequest) (*models.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

// asCaller injects an authenticated email the way the auth middleware would.
func asCaller(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email != "" {
			c.Set(middleware.ContextUserEmail, email)
		}
		c.Next()
	}
}
