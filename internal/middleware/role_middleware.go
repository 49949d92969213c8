package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decorly-backend-go/internal/db"
)

// RoleMiddleware provides role-based route guards. Instead of each handler
// repeating the lookup, routes declare the role they require and compose
// this guard after VerifyToken. Costs one store read per guarded request.
type RoleMiddleware struct {
	userRepo db.UserRepository
}

// NewRoleMiddleware creates a new RoleMiddleware instance.
func NewRoleMiddleware(userRepo db.UserRepository) *RoleMiddleware {
	if userRepo == nil {
		panic("UserRepository is not initialized for RoleMiddleware")
	}
	return &RoleMiddleware{userRepo: userRepo}
}

// RequireRole aborts with 403 unless the authenticated email resolves to an
// account holding the given role. Must run after AuthMiddleware.VerifyToken.
func (m *RoleMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextUserEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: user email not found in context"})
			return
		}

		user, err := m.userRepo.GetByEmail(c.Request.Context(), email)
		if err != nil {
			// Unknown account or store failure both end the request here;
			// an unregistered caller is simply not authorized.
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}

		c.Next()
	}
}
