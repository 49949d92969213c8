package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/middleware"
	"decorly-backend-go/internal/models"
)

// UserHandler handles account-related API endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// callerEmail pulls the verified email the auth middleware stored, aborting
// with 401 if it is missing (middleware not run or misconfigured route).
func callerEmail(c *gin.Context) (string, bool) {
	email := c.GetString(middleware.ContextUserEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user email not found in context"})
		return "", false
	}
	return email, true
}

// intQuery parses a non-negative integer query parameter, falling back to
// def on absence or garbage.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}

// mapUserErrorToStatus maps errors from core.UserService to HTTP responses.
func mapUserErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found", Details: err.Error()})
	case errors.Is(err, core.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role", Details: err.Error()})
	default:
		log.Printf("UserHandler internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// Register handles POST /users, the register-or-touch operation. It is
// unauthenticated: the client has just completed identity verification and
// reports the email it signed in with. An existing account only gets its
// last-login touched.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, created, err := h.userService.RegisterOrTouch(c.Request.Context(), req.Email, req.DisplayName)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetRole handles GET /user/role for the authenticated caller. An
// unregistered caller gets an empty role, not a 404.
func (h *UserHandler) GetRole(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	role, err := h.userService.GetRole(c.Request.Context(), email)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, RoleResponse{Role: role})
}

// ListUsers handles GET /users (admin). Supports limit/skip pagination and
// optional role and work_status filters; the requesting admin's own record
// is always excluded.
func (h *UserHandler) ListUsers(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), core.ListUsersParams{
		Role:           c.Query("role"),
		WorkStatus:     c.Query("work_status"),
		RequesterEmail: email,
		Limit:          intQuery(c, "limit", 0),
		Skip:           intQuery(c, "skip", 0),
	})
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, PagedResponse{Results: users, Total: total})
}

// PromoteRole handles PATCH /user/:id/role (admin). The :id parameter is the
// target account's email.
func (h *UserHandler) PromoteRole(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req models.PromoteRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.userService.PromoteRole(c.Request.Context(), email, c.Param("id"), req.Role)
	if err != nil {
		mapUserErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
