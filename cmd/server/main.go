package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carpool/internal/config"
	"carpool/internal/database"
	"carpool/internal/handlers"
	"carpool/internal/middleware"
	"carpool/internal/repositories/mongodb"
	"carpool/internal/services"
	"carpool/pkg/logger"
	"carpool/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	mongoClient, db, err := database.ConnectMongoDB(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.WithError(err).Error("failed to disconnect mongodb client")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}

	redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.WithError(err).Error("failed to close redis client")
		}
	}()

	// Caching
	cacheService := services.NewCacheService(redisClient, "carpool", appLogger)

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	rideRepo := mongodb.NewRideRepository(db, cacheService)
	reviewRepo := mongodb.NewReviewRepository(db, cacheService)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, appLogger)
	rideService := services.NewRideService(rideRepo, appLogger)
	bookingService := services.NewBookingService(rideRepo, appLogger)
	reviewService := services.NewReviewService(reviewRepo, rideRepo, appLogger)
	userService := services.NewUserService(userRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	rideHandler := handlers.NewRideHandler(rideService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(userService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	authRequired := middleware.AuthRequired(userRepo, cfg.Security.JWTSecret)

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler)
		routes.SetupRideRoutes(v1, authRequired, rideHandler, bookingHandler)
		routes.SetupReviewRoutes(v1, authRequired, reviewHandler)
		routes.SetupUserRoutes(v1, authRequired, userHandler)
		routes.SetupAdminRoutes(v1, authRequired, adminHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := cacheService.Ping(c.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatalf("Forced shutdown: %v", err)
	}

	appLogger.Info("server stopped")
}
