package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"decorly-backend-go/internal/models"
)

const bookingsCollection = "bookings"

// firestoreBookingRepository implements the BookingRepository interface using
// Firestore. The two lifecycle transitions that also touch a decorator's
// work status run as Firestore transactions so a partial failure can never
// leave a booking assigned with no decorator marked busy, or completed with
// the decorator still in service.
type firestoreBookingRepository struct {
	client *firestore.Client
}

// NewFirestoreBookingRepository creates a new instance of firestoreBookingRepository.
func NewFirestoreBookingRepository(client *firestore.Client) BookingRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BookingRepository.")
	}
	return &firestoreBookingRepository{client: client}
}

// Create adds a new booking document with an auto-generated ID.
func (r *firestoreBookingRepository) Create(ctx context.Context, booking *models.Booking) (string, error) {
	docRef := r.client.Collection(bookingsCollection).NewDoc()
	booking.ID = docRef.ID
	_, err := docRef.Create(ctx, booking)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a booking document by its ID.
func (r *firestoreBookingRepository) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, errors.New("bookingID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(bookingsCollection).Doc(bookingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking '%s': %w", bookingID, err)
	}

	var booking models.Booking
	if err := docSnap.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking data for '%s': %w", bookingID, err)
	}
	booking.ID = docSnap.Ref.ID
	return &booking, nil
}

// List returns one page of bookings matching the filter plus the total count
// of matches independent of pagination.
func (r *firestoreBookingRepository) List(ctx context.Context, filter BookingFilter) ([]*models.Booking, int64, error) {
	query := r.client.Collection(bookingsCollection).Query
	if filter.Status != "" {
		query = query.Where("serviceStatus", "==", filter.Status)
	}
	if filter.CustomerEmail != "" {
		query = query.Where("customerEmail", "==", filter.CustomerEmail)
	}

	total, err := countDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	query = query.OrderBy(sortBy, sortDirection(filter.Descending))
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var bookings []*models.Booking
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate bookings: %w", err)
		}
		var booking models.Booking
		if err := doc.DataTo(&booking); err != nil {
			log.Printf("Error decoding booking data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		booking.ID = doc.Ref.ID
		bookings = append(bookings, &booking)
	}
	return bookings, total, nil
}

// UpdateFields applies an allow-listed set of field updates to a booking.
func (r *firestoreBookingRepository) UpdateFields(ctx context.Context, bookingID string, fields map[string]interface{}) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for UpdateFields operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	_, err := r.client.Collection(bookingsCollection).Doc(bookingID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
		}
		return fmt.Errorf("failed to update booking '%s': %w", bookingID, err)
	}
	return nil
}

// AssignDecorator atomically marks the booking assigned, records the
// decorator's identity on it, and flips the decorator to in_service. The
// decorator's role and availability are re-checked inside the transaction so
// two concurrent assignments cannot both claim the same decorator.
func (r *firestoreBookingRepository) AssignDecorator(ctx context.Context, bookingID string, decorator *models.User) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for AssignDecorator operation")
	}
	if decorator == nil || decorator.Email == "" {
		return errors.New("decorator with email is required for AssignDecorator operation")
	}

	bookingRef := r.client.Collection(bookingsCollection).Doc(bookingID)
	userRef := r.client.Collection(usersCollection).Doc(decorator.Email)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(bookingRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
			}
			return fmt.Errorf("failed to read booking '%s': %w", bookingID, err)
		}

		userSnap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("user '%s' not found: %w", decorator.Email, ErrNotFound)
			}
			return fmt.Errorf("failed to read user '%s': %w", decorator.Email, err)
		}
		var target models.User
		if err := userSnap.DataTo(&target); err != nil {
			return fmt.Errorf("failed to decode user data for '%s': %w", decorator.Email, err)
		}
		if target.Role != models.RoleDecorator {
			return fmt.Errorf("user '%s': %w", decorator.Email, ErrNotDecorator)
		}
		if target.WorkStatus != models.WorkStatusAvailable {
			return fmt.Errorf("decorator '%s': %w", decorator.Email, ErrDecoratorUnavailable)
		}

		ref := models.DecoratorRef{
			ID:    userSnap.Ref.ID,
			Name:  target.DisplayName,
			Email: userSnap.Ref.ID,
		}
		if err := tx.Update(bookingRef, []firestore.Update{
			{Path: "serviceStatus", Value: models.BookingAssigned},
			{Path: "decorator", Value: ref},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return fmt.Errorf("failed to mark booking '%s' assigned: %w", bookingID, err)
		}
		if err := tx.Update(userRef, []firestore.Update{
			{Path: "workStatus", Value: models.WorkStatusInService},
		}); err != nil {
			return fmt.Errorf("failed to mark decorator '%s' in service: %w", decorator.Email, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// SetStatus updates only a booking's lifecycle status.
func (r *firestoreBookingRepository) SetStatus(ctx context.Context, bookingID, bookingStatus string) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for SetStatus operation")
	}
	_, err := r.client.Collection(bookingsCollection).Doc(bookingID).Update(ctx, []firestore.Update{
		{Path: "serviceStatus", Value: bookingStatus},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
		}
		return fmt.Errorf("failed to set status for booking '%s': %w", bookingID, err)
	}
	return nil
}

// FinishAndRelease atomically moves the booking into a terminal status
// (completed or cancelled) and releases the decorator back to available.
// Both effects land or neither does.
func (r *firestoreBookingRepository) FinishAndRelease(ctx context.Context, bookingID, decoratorEmail, bookingStatus string) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for FinishAndRelease operation")
	}
	if decoratorEmail == "" {
		return errors.New("decoratorEmail cannot be empty for FinishAndRelease operation")
	}

	bookingRef := r.client.Collection(bookingsCollection).Doc(bookingID)
	userRef := r.client.Collection(usersCollection).Doc(decoratorEmail)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(bookingRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
			}
			return fmt.Errorf("failed to read booking '%s': %w", bookingID, err)
		}
		if _, err := tx.Get(userRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return fmt.Errorf("user '%s' not found: %w", decoratorEmail, ErrNotFound)
			}
			return fmt.Errorf("failed to read user '%s': %w", decoratorEmail, err)
		}

		if err := tx.Update(bookingRef, []firestore.Update{
			{Path: "serviceStatus", Value: bookingStatus},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return fmt.Errorf("failed to mark booking '%s' %s: %w", bookingID, bookingStatus, err)
		}
		if err := tx.Update(userRef, []firestore.Update{
			{Path: "workStatus", Value: models.WorkStatusAvailable},
		}); err != nil {
			return fmt.Errorf("failed to release decorator '%s': %w", decoratorEmail, err)
		}
		return nil
	})
}

// Delete removes a booking document.
func (r *firestoreBookingRepository) Delete(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return errors.New("bookingID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(bookingsCollection).Doc(bookingID).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("booking '%s' not found: %w", bookingID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete booking '%s': %w", bookingID, err)
	}
	return nil
}

// CountByServiceName groups bookings by service name for the popularity
// aggregate. Firestore has no server-side group-by, so only the serviceName
// field is fetched and the counting happens here, most-booked first.
func (r *firestoreBookingRepository) CountByServiceName(ctx context.Context) ([]models.ServiceBookingCount, error) {
	iter := r.client.Collection(bookingsCollection).Select("serviceName").Documents(ctx)
	defer iter.Stop()

	counts := make(map[string]int64)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bookings for aggregation: %w", err)
		}
		name, _ := doc.Data()["serviceName"].(string)
		if name == "" {
			continue
		}
		counts[name]++
	}

	results := make([]models.ServiceBookingCount, 0, len(counts))
	for name, count := range counts {
		results = append(results, models.ServiceBookingCount{ServiceName: name, Count: count})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].ServiceName < results[j].ServiceName
	})
	return results, nil
}
