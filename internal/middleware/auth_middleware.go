package middleware

import (
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// Context keys populated by the auth middleware.
const (
	// ContextUserEmail holds the verified email of the authenticated caller.
	ContextUserEmail = "userEmail"
	// ContextUserDisplayName holds the display name claim, when present.
	ContextUserDisplayName = "userDisplayName"
)

// ErrorResponse is a local definition for sending standardized error
// messages. It mirrors the one in internal/api/dto_models.go to avoid import
// cycles.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for identity-token authentication.
// The token is verified with the external identity service; the verified
// email is the only identity the rest of the stack uses.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
}

// NewAuthMiddleware creates a new AuthMiddleware instance. It panics if the
// auth client is nil: no authenticated route can work without it.
func NewAuthMiddleware(fbAuthClient *auth.Client) *AuthMiddleware {
	if fbAuthClient == nil {
		log.Fatal("CRITICAL_ERROR: Firebase Auth client is not initialized for AuthMiddleware.")
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient}
}

// VerifyToken verifies the bearer token from the Authorization header. On
// success the verified email (and display name, if claimed) land in the Gin
// context; on any failure the request is aborted with 401 and never reaches
// a handler.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}
		idToken := parts[1]

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			log.Printf("AuthMiddleware: Error verifying ID token: %v", err)
			// Generic message to the client; specifics stay server-side.
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication token carries no verified email"})
			return
		}
		c.Set(ContextUserEmail, email)

		if name, ok := token.Claims["name"].(string); ok {
			c.Set(ContextUserDisplayName, name)
		}

		c.Next()
	}
}
