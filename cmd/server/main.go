// Package main runs the padel events HTTP API with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/padelhub/backend/config"
	"github.com/padelhub/backend/internal/auth"
	"github.com/padelhub/backend/internal/events"
	"github.com/padelhub/backend/internal/feedback"
	"github.com/padelhub/backend/internal/locations"
	"github.com/padelhub/backend/internal/memories"
	"github.com/padelhub/backend/internal/middleware"
	"github.com/padelhub/backend/internal/notifications"
	"github.com/padelhub/backend/internal/notify"
	"github.com/padelhub/backend/internal/payments"
	"github.com/padelhub/backend/pkg/database"
	"github.com/padelhub/backend/pkg/queue"
	"github.com/padelhub/backend/pkg/redis"
	"github.com/padelhub/backend/pkg/response"
	"github.com/padelhub/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MemoriesBucket:       cfg.AWS.MemoriesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Notification pipeline
	authRepo := auth.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)
	emailLogs := notify.NewEmailLogRepository(pool)
	outbox := notify.NewOutbox(emailLogs, jobQueue, logger)
	notifier := notify.NewService(outbox, authRepo, notificationRepo, cfg.App.BaseURL, logger)

	// Auth
	authHandler := auth.NewHandler(authRepo, jwtService, notifier, logger)

	// Events
	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, authRepo, notifier, logger)

	// Notifications
	notificationHandler := notifications.NewHandler(notificationRepo)

	// Payments
	paymentRepo := payments.NewRepository(pool)
	provider := payments.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.APIBaseURL, logger)
	paymentHandler := payments.NewHandler(provider, eventRepo, paymentRepo, cfg.App.BaseURL, logger)
	paymentWebhook := payments.NewWebhookHandler(cfg.Stripe.WebhookSecret, eventRepo, paymentRepo, nil, logger)

	// Locations
	locationRepo := locations.NewRepository(pool)
	locationHandler := locations.NewHandler(locationRepo)

	// Feedback
	feedbackHandler := feedback.NewHandler(notifier, cfg.Email.FeedbackAddress)

	// Memories (shared photos)
	var memoryHandler *memories.Handler
	if s3Client != nil {
		memoryHandler = memories.NewHandler(eventRepo, s3Client, logger)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Public reads
	router.GET("/events", eventHandler.List)
	router.GET("/events/:id", eventHandler.GetByID)
	router.GET("/locations", locationHandler.List)

	// Webhooks (no JWT; HMAC signature verified in handler)
	router.POST("/webhooks/payment", paymentWebhook.Handle)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.POST("/events", eventHandler.Create)
		api.PATCH("/events/:id", eventHandler.Update)
		api.DELETE("/events/:id", eventHandler.Delete)
		api.POST("/events/:id/join", eventHandler.Join)
		api.POST("/events/:id/leave", eventHandler.Leave)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)

		api.GET("/profile/complete", authHandler.ProfileComplete)
		api.PATCH("/profile", authHandler.UpdateProfile)

		api.POST("/feedback", feedbackHandler.Submit)
		api.POST("/payments/checkout-session", paymentHandler.CreateCheckoutSession)

		if memoryHandler != nil {
			api.POST("/events/:id/memories/upload-url", memoryHandler.CreateUploadURL)
			api.POST("/events/:id/memories", memoryHandler.Upload)
			api.GET("/events/:id/memories", memoryHandler.List)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
