package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"decorly-backend-go/internal/models"
)

const auditLogsCollection = "auditLogs"

// firestoreAuditRepository implements the AuditRepository interface using
// Firestore. Entries are append-only.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a new instance of firestoreAuditRepository.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends a new audit log entry with an auto-generated ID.
func (r *firestoreAuditRepository) Create(ctx context.Context, entry models.AuditLog) error {
	docRef := r.client.Collection(auditLogsCollection).NewDoc()
	if _, err := docRef.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}
