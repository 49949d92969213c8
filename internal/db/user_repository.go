package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"decorly-backend-go/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using
// Firestore. User documents are keyed by email.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// GetByEmail retrieves a user document by email.
func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user '%s' not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", email, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for '%s': %w", email, err)
	}
	user.Email = docSnap.Ref.ID
	return &user, nil
}

// Create adds a new user document keyed by the user's email.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Email == "" {
		return errors.New("user email cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.Email).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user '%s': %w", user.Email, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user '%s': %w", user.Email, err)
	}
	return nil
}

// TouchLastLogin updates only the last-login timestamp of an existing user.
// Role and every other field are untouched, so re-registering never resets a
// promotion.
func (r *firestoreUserRepository) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	if email == "" {
		return errors.New("email cannot be empty for TouchLastLogin operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(email).Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: at},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user '%s' not found: %w", email, ErrNotFound)
		}
		return fmt.Errorf("failed to touch last login for '%s': %w", email, err)
	}
	return nil
}

// SetRole sets the role and work status together in one write.
func (r *firestoreUserRepository) SetRole(ctx context.Context, email, role, workStatus string) error {
	if email == "" {
		return errors.New("email cannot be empty for SetRole operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(email).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
		{Path: "workStatus", Value: workStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user '%s' not found: %w", email, ErrNotFound)
		}
		return fmt.Errorf("failed to set role for '%s': %w", email, err)
	}
	return nil
}

// SetWorkStatus updates only a decorator's work status.
func (r *firestoreUserRepository) SetWorkStatus(ctx context.Context, email, workStatus string) error {
	if email == "" {
		return errors.New("email cannot be empty for SetWorkStatus operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(email).Update(ctx, []firestore.Update{
		{Path: "workStatus", Value: workStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user '%s' not found: %w", email, ErrNotFound)
		}
		return fmt.Errorf("failed to set work status for '%s': %w", email, err)
	}
	return nil
}

// List returns one page of users matching the filter plus the total count of
// matches independent of pagination. The requesting admin's own record is
// excluded through the filter's ExcludeEmail.
func (r *firestoreUserRepository) List(ctx context.Context, filter UserFilter) ([]*models.User, int64, error) {
	query := r.client.Collection(usersCollection).Query
	if filter.Role != "" {
		query = query.Where("role", "==", filter.Role)
	}
	if filter.WorkStatus != "" {
		query = query.Where("workStatus", "==", filter.WorkStatus)
	}
	if filter.ExcludeEmail != "" {
		// Firestore requires the first ordering to match the inequality field.
		query = query.Where("email", "!=", filter.ExcludeEmail)
	}
	query = query.OrderBy("email", firestore.Asc)

	total, err := countDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			log.Printf("Error decoding user data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		user.Email = doc.Ref.ID
		users = append(users, &user)
	}
	return users, total, nil
}

// ListByRole returns all users holding the given role. Unpaginated: the
// public decorator listing is served from this.
func (r *firestoreUserRepository) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	if role == "" {
		return nil, errors.New("role cannot be empty for ListByRole operation")
	}
	iter := r.client.Collection(usersCollection).Where("role", "==", role).Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users with role '%s': %w", role, err)
		}
		var user models.User
		if err := doc.DataTo(&user); err != nil {
			log.Printf("Error decoding user data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		user.Email = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}
