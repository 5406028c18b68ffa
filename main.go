package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohabnada13/nory/cache"
	"github.com/mohabnada13/nory/config"
	"github.com/mohabnada13/nory/database"
	"github.com/mohabnada13/nory/handlers"
	"github.com/mohabnada13/nory/kafka"
	"github.com/mohabnada13/nory/middleware"
	"github.com/mohabnada13/nory/paymob"
	"github.com/mohabnada13/nory/storage"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := cache.InitRedis(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize Kafka producer
	producer, err := kafka.InitProducer(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	// Initialize Kafka consumer
	consumer, err := kafka.InitConsumer(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	// Start Kafka consumer in background
	go func() {
		if err := kafka.StartConsumer(consumer, cfg.Kafka.Topic, logger); err != nil {
			logger.Error("Kafka consumer error", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry
	shutdown, err := middleware.InitTracing("nory")
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	// Payment gateway; runs in mock mode until real credentials are set
	gateway := paymob.NewClient(cfg.Paymob, logger)

	// S3 presigner is optional; uploads report the missing configuration
	var presigner *storage.Presigner
	if cfg.AWS.Configured() {
		presigner, err = storage.NewPresigner(cfg.AWS)
		if err != nil {
			logger.Fatal("Failed to initialize S3 presigner", zap.Error(err))
		}
	} else {
		logger.Warn("AWS S3 not configured, uploads disabled")
	}

	// Setup REST API with Gin
	router := gin.New()
	router.Use(gin.Recovery())
	// OpenTelemetry middleware must be first to extract trace context
	router.Use(otelgin.Middleware("nory"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	jwtSecret := []byte(cfg.JWTSecret)
	auth := middleware.AuthRequired(jwtSecret)

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db, jwtSecret, logger)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.PUT("/users/me/fcm-token", auth, authHandler.UpdateFCMToken)

	// Payment endpoints
	paymentHandler := handlers.NewPaymentHandler(gateway, logger)
	router.POST("/payments", auth, paymentHandler.CreatePayment)
	router.POST("/payments/verify", paymentHandler.VerifyCallback)

	// Order endpoints
	orderHandler := handlers.NewOrderHandler(db, producer, cfg.Kafka.Topic, logger)
	router.POST("/orders", auth, orderHandler.CreateOrder)
	router.GET("/orders/:id", auth, orderHandler.GetOrder)
	router.POST("/orders/:id/advance", auth, orderHandler.AdvanceOrder)

	// Catalog endpoints
	productHandler := handlers.NewProductHandler(db, redisClient, logger)
	router.GET("/categories", productHandler.GetCategories)
	router.GET("/products", productHandler.GetProducts)
	router.GET("/products/:id", productHandler.GetProduct)

	// Seed endpoint
	seedHandler := handlers.NewSeedHandler(db, redisClient, logger)
	router.POST("/seed", auth, seedHandler.SeedSampleData)

	// Upload endpoint
	uploadHandler := handlers.NewUploadHandler(presigner, logger)
	router.POST("/uploads", auth, uploadHandler.CreateUploadURL)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Nory API started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
