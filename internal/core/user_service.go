package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo     db.UserRepository
	auditService AuditService
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, auditService AuditService) UserService {
	return &userService{
		userRepo:     userRepo,
		auditService: auditService,
	}
}

// RegisterOrTouch upserts an account by email. New accounts start with the
// default role and both timestamps set to now; existing accounts only get
// their last-login touched, so a promotion is never undone by signing in
// again.
func (s *userService) RegisterOrTouch(ctx context.Context, email, displayName string) (*models.User, bool, error) {
	now := time.Now().UTC()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			newUser := &models.User{
				Email:       email,
				DisplayName: displayName,
				Role:        models.RoleUser,
				WorkStatus:  models.WorkStatusAvailable,
				CreatedAt:   now,
				LastLoginAt: now,
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				// A concurrent registration may have won the race; fall back
				// to the touch path.
				if errors.Is(createErr, db.ErrAlreadyExists) {
					return s.RegisterOrTouch(ctx, email, displayName)
				}
				return nil, false, fmt.Errorf("failed to create user '%s': %w", email, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user '%s' from repository: %w", email, err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, email, now); err != nil {
		return nil, false, fmt.Errorf("failed to touch last login for '%s': %w", email, err)
	}
	user.LastLoginAt = now
	return user, false, nil
}

// GetRole returns the stored role for the email, or "" when no account
// exists yet. Absence is not an error here: the client asks for this right
// after sign-in, possibly before registering.
func (s *userService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get user '%s' from repository: %w", email, err)
	}
	return user.Role, nil
}

// ListUsers returns one page of users plus the total matching the filters,
// always excluding the requesting admin's own record.
func (s *userService) ListUsers(ctx context.Context, params ListUsersParams) ([]*models.User, int64, error) {
	if params.Role != "" && !models.ValidRole(params.Role) {
		return nil, 0, fmt.Errorf("role '%s': %w", params.Role, ErrInvalidRole)
	}

	users, total, err := s.userRepo.List(ctx, db.UserFilter{
		Role:         params.Role,
		WorkStatus:   params.WorkStatus,
		ExcludeEmail: params.RequesterEmail,
		Limit:        params.Limit,
		Offset:       params.Skip,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// PromoteRole sets the target user's role. Work status is reset to available
// in the same write: promoting a busy decorator away from the decorator role
// must not leave them stuck in_service.
func (s *userService) PromoteRole(ctx context.Context, actorEmail, targetEmail, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("role '%s': %w", role, ErrInvalidRole)
	}

	if err := s.userRepo.SetRole(ctx, targetEmail, role, models.WorkStatusAvailable); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, targetEmail)
		}
		return nil, fmt.Errorf("failed to set role for '%s': %w", targetEmail, err)
	}

	s.recordAudit(ctx, models.AuditLog{
		Timestamp:  time.Now().UTC(),
		ActorEmail: actorEmail,
		Action:     models.AuditRolePromoted,
		TargetType: "USER",
		TargetID:   targetEmail,
		Details:    map[string]interface{}{"role": role},
	})

	user, err := s.userRepo.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user '%s' after promotion: %w", targetEmail, err)
	}
	return user, nil
}

// recordAudit writes an audit entry; auditing is best-effort and never fails
// the operation it describes.
func (s *userService) recordAudit(ctx context.Context, entry models.AuditLog) {
	if s.auditService == nil {
		return
	}
	_ = s.auditService.CreateAuditLog(ctx, entry)
}
