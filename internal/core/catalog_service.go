package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

// serviceSortFields is the allow-list of catalog sort fields. Anything else
// is rejected before a query is built, so a caller-controlled sort can never
// reach the store unvalidated.
var serviceSortFields = map[string]bool{
	"name":      true,
	"price":     true,
	"category":  true,
	"createdAt": true,
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	serviceRepo  db.ServiceRepository
	userRepo     db.UserRepository
	auditService AuditService
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(serviceRepo db.ServiceRepository, userRepo db.UserRepository, auditService AuditService) CatalogService {
	return &catalogService{
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// parseSortOrder maps the query string order onto a descending flag.
func parseSortOrder(order string) (bool, error) {
	switch order {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	}
	return false, fmt.Errorf("order '%s': %w", order, ErrInvalidSortOrder)
}

// ListDecorators returns every user holding the decorator role. Public and
// unpaginated; the decorator directory is expected to stay small.
func (s *catalogService) ListDecorators(ctx context.Context) ([]*models.User, error) {
	decorators, err := s.userRepo.ListByRole(ctx, models.RoleDecorator)
	if err != nil {
		return nil, fmt.Errorf("failed to list decorators: %w", err)
	}
	return decorators, nil
}

// ListServices returns catalog entries, optionally filtered by a
// case-insensitive substring of the name and sorted by an allow-listed
// field. Default sort is name ascending.
func (s *catalogService) ListServices(ctx context.Context, searchText, sortBy, order string) ([]*models.Service, error) {
	if sortBy == "" {
		sortBy = "name"
	}
	if !serviceSortFields[sortBy] {
		return nil, fmt.Errorf("field '%s': %w", sortBy, ErrInvalidSortField)
	}
	descending, err := parseSortOrder(order)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.List(ctx, db.ServiceQuery{
		SearchText: searchText,
		SortBy:     sortBy,
		Descending: descending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// GetService retrieves one catalog entry by ID.
func (s *catalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to get service '%s': %w", serviceID, err)
	}
	return service, nil
}

// CreateService adds a catalog entry.
func (s *catalogService) CreateService(ctx context.Context, actorEmail string, req models.CreateServiceRequest) (*models.Service, error) {
	now := time.Now().UTC()
	service := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	service.ID = id

	s.recordAudit(ctx, actorEmail, models.AuditServiceCreated, id, map[string]interface{}{"name": req.Name})
	return service, nil
}

// UpdateService applies the allow-listed catalog fields. Only fields present
// in the request body are written; nothing else can be injected.
func (s *catalogService) UpdateService(ctx context.Context, actorEmail, serviceID string, req models.UpdateServiceRequest) (*models.Service, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.ImageURL != nil {
		fields["imageURL"] = *req.ImageURL
	}
	if len(fields) == 0 {
		return s.GetService(ctx, serviceID)
	}

	if err := s.serviceRepo.UpdateFields(ctx, serviceID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to update service '%s': %w", serviceID, err)
	}

	s.recordAudit(ctx, actorEmail, models.AuditServiceUpdated, serviceID, nil)
	return s.GetService(ctx, serviceID)
}

// DeleteService removes a catalog entry. Existing bookings keep the copied
// service name and price.
func (s *catalogService) DeleteService(ctx context.Context, actorEmail, serviceID string) error {
	if err := s.serviceRepo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrServiceNotFound, serviceID)
		}
		return fmt.Errorf("failed to delete service '%s': %w", serviceID, err)
	}
	s.recordAudit(ctx, actorEmail, models.AuditServiceDeleted, serviceID, nil)
	return nil
}

func (s *catalogService) recordAudit(ctx context.Context, actorEmail, action, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.CreateAuditLog(ctx, models.AuditLog{
		Timestamp:  time.Now().UTC(),
		ActorEmail: actorEmail,
		Action:     action,
		TargetType: "SERVICE",
		TargetID:   targetID,
		Details:    details,
	})
}
