package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"decorly-backend-go/internal/api"
	"decorly-backend-go/internal/config"
	"decorly-backend-go/internal/core"
	"decorly-backend-go/internal/db"
	"decorly-backend-go/internal/metrics"
	"decorly-backend-go/internal/middleware"
)

func main() {
	// Logger first, so startup failures are structured too. The mode is read
	// straight from the environment because the config loader has not run yet.
	var logger *zap.Logger
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	defer logger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load application configuration", zap.Error(err))
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		logger.Fatal("Failed to initialize Firestore and Firebase Auth", zap.Error(err))
	}
	fsClient := db.GetFirestoreClient()
	if fsClient == nil {
		logger.Fatal("Firestore client is nil after initialization")
	}
	defer fsClient.Close()

	// Repositories
	userRepo := db.NewFirestoreUserRepository(fsClient)
	serviceRepo := db.NewFirestoreServiceRepository(fsClient)
	bookingRepo := db.NewFirestoreBookingRepository(fsClient)
	paymentRepo := db.NewFirestorePaymentRepository(fsClient)
	auditRepo := db.NewFirestoreAuditRepository(fsClient)

	// Services
	auditService := core.NewAuditService(auditRepo)
	userService := core.NewUserService(userRepo, auditService)
	catalogService := core.NewCatalogService(serviceRepo, userRepo, auditService)
	bookingService := core.NewBookingService(bookingRepo, serviceRepo, userRepo, auditService)
	paymentService, err := core.NewPaymentService(paymentRepo, bookingRepo, auditService, appConfig)
	if err != nil {
		logger.Fatal("Failed to initialize payment service", zap.Error(err))
	}

	metrics.Register()

	if appConfig.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
	} else {
		logger.Warn("CLIENT_URL is not set; CORS middleware is disabled")
	}
	router.Use(middleware.RateLimitMiddleware(appConfig))
	router.Use(metrics.Middleware())

	api.SetupRoutes(router, logger, userRepo, userService, catalogService, bookingService, paymentService)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", appConfig.Port),
			zap.String("mode", gin.Mode()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, draining connections...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", zap.Error(err))
	}
	logger.Info("Server exited.")
}
