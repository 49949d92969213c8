package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockUserRepo) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	return m.Called(ctx, email, at).Error(0)
}
func (m *mockUserRepo) SetRole(ctx context.Context, email, role, workStatus string) error {
	return m.Called(ctx, email, role, workStatus).Error(0)
}
func (m *mockUserRepo) SetWorkStatus(ctx context.Context, email, workStatus string) error {
	return m.Called(ctx, email, workStatus).Error(0)
}
func (m *mockUserRepo) List(ctx context.Context, filter db.UserFilter) ([]*models.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}
func (m *mockUserRepo) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, service *models.Service) (string, error) {
	args := m.Called(ctx, service)
	return args.String(0), args.Error(1)
}
func (m *mockServiceRepo) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockServiceRepo) List(ctx context.Context, query db.ServiceQuery) ([]*models.Service, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}
func (m *mockServiceRepo) UpdateFields(ctx context.Context, serviceID string, fields map[string]interface{}) error {
	return m.Called(ctx, serviceID, fields).Error(0)
}
func (m *mockServiceRepo) Delete(ctx context.Context, serviceID string) error {
	return m.Called(ctx, serviceID).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockBookingRepo) List(ctx context.Context, filter db.BookingFilter) ([]*models.Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Booking), args.Get(1).(int64), args.Error(2)
}
func (m *mockBookingRepo) UpdateFields(ctx context.Context, bookingID string, fields map[string]interface{}) error {
	return m.Called(ctx, bookingID, fields).Error(0)
}
func (m *mockBookingRepo) AssignDecorator(ctx context.Context, bookingID string, decorator *models.User) error {
	return m.Called(ctx, bookingID, decorator).Error(0)
}
func (m *mockBookingRepo) SetStatus(ctx context.Context, bookingID, status string) error {
	return m.Called(ctx, bookingID, status).Error(0)
}
func (m *mockBookingRepo) FinishAndRelease(ctx context.Context, bookingID, decoratorEmail, bookingStatus string) error {
	return m.Called(ctx, bookingID, decoratorEmail, bookingStatus).Error(0)
}
func (m *mockBookingRepo) Delete(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}
func (m *mockBookingRepo) CountByServiceName(ctx context.Context) ([]models.ServiceBookingCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceBookingCount), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}
func (m *mockPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *mockPaymentRepo) MarkPaid(ctx context.Context, transactionID string, at time.Time) error {
	return m.Called(ctx, transactionID, at).Error(0)
}
func (m *mockPaymentRepo) MarkFailed(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) CreateAuditLog(ctx context.Context, entry models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}
