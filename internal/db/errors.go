package db

import "errors"

// Sentinel errors shared by the Firestore repositories. Services translate
// these into their own error taxonomy; handlers never see them directly.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned when a create collides with an existing
	// document ID.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrNotDecorator is returned by the assignment transaction when the
	// target user does not hold the decorator role.
	ErrNotDecorator = errors.New("user is not a decorator")

	// ErrDecoratorUnavailable is returned by the assignment transaction when
	// the target decorator is already in service.
	ErrDecoratorUnavailable = errors.New("decorator is not available")
)
