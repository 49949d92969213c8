package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/metrics"
	"decorly-backend-go/internal/middleware"
	"decorly-backend-go/internal/models"
)

// SetupRoutes configures all application routes with their handlers and
// guards. Global middleware (logging, recovery, CORS, rate limiting,
// metrics) is expected to be applied to the router before this is called,
// typically in main.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userRepo db.UserRepository,
	userService core.UserService,
	catalogService core.CatalogService,
	bookingService core.BookingService,
	paymentService core.PaymentService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized; routes cannot be secured.")
		panic("Firebase Auth client is nil during route setup")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient)
	roleMW := middleware.NewRoleMiddleware(userRepo)
	requireAdmin := roleMW.RequireRole(models.RoleAdmin)
	requireDecorator := roleMW.RequireRole(models.RoleDecorator)

	userHandler := NewUserHandler(userService)
	catalogHandler := NewCatalogHandler(catalogService)
	bookingHandler := NewBookingHandler(bookingService)
	paymentHandler := NewPaymentHandler(paymentService)

	// --- Users ---
	router.GET("/users", authMW.VerifyToken(), requireAdmin, userHandler.ListUsers)
	router.GET("/user/role", authMW.VerifyToken(), userHandler.GetRole)
	router.POST("/users", userHandler.Register) // register-or-touch, deliberately unauthenticated
	router.PATCH("/user/:id/role", authMW.VerifyToken(), requireAdmin, userHandler.PromoteRole)

	// --- Catalog (public reads, admin mutations) ---
	router.GET("/decorators", catalogHandler.ListDecorators)
	router.GET("/services", catalogHandler.ListServices)
	router.GET("/service/:id", catalogHandler.GetService)
	router.POST("/services", authMW.VerifyToken(), requireAdmin, catalogHandler.CreateService)
	router.PATCH("/services/:id", authMW.VerifyToken(), requireAdmin, catalogHandler.UpdateService)
	router.DELETE("/services/:id", authMW.VerifyToken(), requireAdmin, catalogHandler.DeleteService)

	// --- Bookings ---
	router.GET("/bookings", authMW.VerifyToken(), bookingHandler.ListBookings)
	router.GET("/user-bookings", authMW.VerifyToken(), bookingHandler.ListMyBookings)
	router.POST("/booking", authMW.VerifyToken(), bookingHandler.CreateBooking)
	router.PATCH("/booking/:id", authMW.VerifyToken(), bookingHandler.UpdateBooking)
	router.PATCH("/booking/:id/assigned", authMW.VerifyToken(), requireAdmin, bookingHandler.AssignDecorator)
	router.DELETE("/booking/:id", authMW.VerifyToken(), bookingHandler.DeleteBooking)
	// Decorator-driven status transition at PATCH /services/decorators/:bookingID.
	// Gin's routing tree rejects a static segment next to the ":id" wildcard
	// already registered for PATCH /services/:id, so the literal "decorators"
	// segment is matched by hand here instead of in the route pattern.
	router.PATCH("/services/:id/:bookingID", authMW.VerifyToken(), func(c *gin.Context) {
		if c.Param("id") != "decorators" {
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
		c.Next()
	}, requireDecorator, bookingHandler.UpdateStatus)
	router.GET("/services/booked", bookingHandler.BookedServices)

	// --- Payments ---
	router.POST("/payments/initiate", authMW.VerifyToken(), paymentHandler.InitiatePayment)
	// Public: the gateway authenticates via the signed payload, not a bearer token.
	router.POST("/payments/webhook", paymentHandler.HandleWebhook)

	// --- Ops ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Decorly backend is healthy."})
	})
	router.GET("/metrics", metrics.Handler())

	logger.Info("API routes configured successfully.")
}
