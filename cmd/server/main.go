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

	"github.com/gin-gonic/gin"

	"rideinbls/internal/config"
	"rideinbls/internal/handlers"
	"rideinbls/internal/middleware"
	"rideinbls/internal/pricing"
	mongorepo "rideinbls/internal/repositories/mongodb"
	"rideinbls/internal/services"
	"rideinbls/internal/utils"
	"rideinbls/pkg/cache"
	"rideinbls/pkg/database"
	"rideinbls/pkg/logger"
	"rideinbls/pkg/maps"
	"rideinbls/pkg/payment"
	"rideinbls/pkg/sms"
	"rideinbls/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: !config.IsProduction(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mongodb, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Name,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongodb.Close()

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	paymentProvider := buildPaymentProvider(cfg, appLogger)
	smsProvider := sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
	mapsProvider, err := maps.NewGoogleMapsProvider(cfg.Maps.Google.APIKey, cfg.Maps.Region, cfg.Maps.Language)
	if err != nil {
		appLogger.Fatalf("Failed to initialize maps provider: %v", err)
	}

	// Repositories
	userRepo := mongorepo.NewUserRepository(mongodb.Database)
	vehicleRepo := mongorepo.NewVehicleRepository(mongodb.Database, redisCache)
	bookingRepo := mongorepo.NewBookingRepository(mongodb.Database)
	paymentRepo := mongorepo.NewPaymentRepository(mongodb.Database)

	// Services
	sessions := pricing.NewSessionManager(cfg.Security.QuoteSessionTTL)
	authService := services.NewAuthService(userRepo, redisCache, smsProvider, cfg.Security.JWTSecret, appLogger)
	vehicleService := services.NewVehicleService(vehicleRepo, appLogger)
	quoteService := services.NewQuoteService(sessions, vehicleRepo, mapsProvider, appLogger)
	paymentService := services.NewPaymentService(paymentProvider, quoteService, bookingRepo, paymentRepo, vehicleRepo, cfg.App.Currency, appLogger)
	bookingService := services.NewBookingService(paymentProvider, bookingRepo, paymentRepo, vehicleRepo, appLogger)
	analyticsService := services.NewAnalyticsService(userRepo, vehicleRepo, bookingRepo, paymentRepo, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	quoteService.StartSweeper(ctx, utils.QuoteSweepInterval)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(analyticsService, userRepo)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg.Security.JWTSecret)
		routes.SetupVehicleRoutes(v1, vehicleHandler)
		routes.SetupQuoteRoutes(v1, quoteHandler)
		routes.SetupBookingRoutes(v1, bookingHandler, cfg.Security.JWTSecret)
		routes.SetupPaymentRoutes(v1, paymentHandler, cfg.Security.JWTSecret)
		routes.SetupAdminRoutes(v1, adminHandler, vehicleHandler, bookingHandler, paymentHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "up", "redis": "up"}
		if err := mongodb.Ping(); err != nil {
			checks["mongodb"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  utils.StatusSuccess,
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Infof("%s listening", cfg.App.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func buildPaymentProvider(cfg *config.Config, appLogger *logger.Logger) payment.Provider {
	switch cfg.Payment.DefaultProvider {
	case "stripe":
		return payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey)
	case "razorpay":
		return payment.NewRazorpayProvider(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
	default:
		appLogger.WithField("provider", cfg.Payment.DefaultProvider).Warn("Unknown payment provider, falling back to razorpay")
		return payment.NewRazorpayProvider(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
	}
}
