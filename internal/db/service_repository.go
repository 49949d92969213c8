package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"decorly-backend-go/internal/models"
)

const servicesCollection = "services"

// firestoreServiceRepository implements the ServiceRepository interface using
// Firestore.
type firestoreServiceRepository struct {
	client *firestore.Client
}

// NewFirestoreServiceRepository creates a new instance of firestoreServiceRepository.
func NewFirestoreServiceRepository(client *firestore.Client) ServiceRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ServiceRepository.")
	}
	return &firestoreServiceRepository{client: client}
}

// Create adds a new service document with an auto-generated ID.
func (r *firestoreServiceRepository) Create(ctx context.Context, service *models.Service) (string, error) {
	docRef := r.client.Collection(servicesCollection).NewDoc()
	service.ID = docRef.ID
	_, err := docRef.Create(ctx, service)
	if err != nil {
		return "", fmt.Errorf("failed to create service: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a service document by its ID.
func (r *firestoreServiceRepository) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	if serviceID == "" {
		return nil, errors.New("serviceID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(servicesCollection).Doc(serviceID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("service '%s' not found: %w", serviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service '%s': %w", serviceID, err)
	}

	var service models.Service
	if err := docSnap.DataTo(&service); err != nil {
		return nil, fmt.Errorf("failed to decode service data for '%s': %w", serviceID, err)
	}
	service.ID = docSnap.Ref.ID
	return &service, nil
}

// List returns catalog entries ordered by the query's sort field. The
// substring search is applied in memory after the ordered fetch: Firestore
// has no case-insensitive or contains operator.
func (r *firestoreServiceRepository) List(ctx context.Context, q ServiceQuery) ([]*models.Service, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	query := r.client.Collection(servicesCollection).OrderBy(sortBy, sortDirection(q.Descending))

	iter := query.Documents(ctx)
	defer iter.Stop()

	search := strings.ToLower(q.SearchText)
	var services []*models.Service
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate services: %w", err)
		}
		var service models.Service
		if err := doc.DataTo(&service); err != nil {
			log.Printf("Error decoding service data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		service.ID = doc.Ref.ID
		if search != "" && !strings.Contains(strings.ToLower(service.Name), search) {
			continue
		}
		services = append(services, &service)
	}
	return services, nil
}

// UpdateFields applies an allow-listed set of field updates to a service.
// The caller (service layer) builds the field map from the update request;
// nothing outside that map can reach the document.
func (r *firestoreServiceRepository) UpdateFields(ctx context.Context, serviceID string, fields map[string]interface{}) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for UpdateFields operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	_, err := r.client.Collection(servicesCollection).Doc(serviceID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("service '%s' not found: %w", serviceID, ErrNotFound)
		}
		return fmt.Errorf("failed to update service '%s': %w", serviceID, err)
	}
	return nil
}

// Delete removes a service document.
func (r *firestoreServiceRepository) Delete(ctx context.Context, serviceID string) error {
	if serviceID == "" {
		return errors.New("serviceID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(servicesCollection).Doc(serviceID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("service '%s' not found: %w", serviceID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete service '%s': %w", serviceID, err)
	}
	return nil
}
