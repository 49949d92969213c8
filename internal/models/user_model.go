package models

import "time"

// Roles a user can hold. Every account starts as RoleUser; promotion is an
// admin action.
const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

// Work statuses for decorators. Other roles keep WorkStatusAvailable.
const (
	WorkStatusAvailable = "available"
	WorkStatusInService = "in_service"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDecorator, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system. The verified email is the
// identity: it is unique and doubles as the Firestore document ID, so the
// lookup coming out of the auth middleware is a single doc read.
type User struct {
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Role        string    `json:"role" firestore:"role"`
	WorkStatus  string    `json:"workStatus" firestore:"workStatus"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt" firestore:"lastLoginAt"`
}
