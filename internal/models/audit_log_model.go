package models

import "time"

// Audit actions recorded for privileged or state-changing operations.
const (
	AuditRolePromoted     = "USER_ROLE_PROMOTED"
	AuditServiceCreated   = "SERVICE_CREATED"
	AuditServiceUpdated   = "SERVICE_UPDATED"
	AuditServiceDeleted   = "SERVICE_DELETED"
	AuditBookingAssigned  = "BOOKING_ASSIGNED"
	AuditBookingCompleted = "BOOKING_COMPLETED"
	AuditBookingCancelled = "BOOKING_CANCELLED"
	AuditPaymentConfirmed = "PAYMENT_CONFIRMED"
)

// AuditLog represents one audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp"`
	ActorEmail string                 `json:"actorEmail" firestore:"actorEmail"` // Who performed the action
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"` // e.g. "USER", "SERVICE", "BOOKING"
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
