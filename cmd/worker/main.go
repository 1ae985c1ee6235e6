// Package main runs the background worker: the outbox email drain plus the
// reminder and memory-share sweeps.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/padelhub/backend/config"
	"github.com/padelhub/backend/internal/auth"
	"github.com/padelhub/backend/internal/events"
	"github.com/padelhub/backend/internal/memories"
	"github.com/padelhub/backend/internal/notifications"
	"github.com/padelhub/backend/internal/notify"
	"github.com/padelhub/backend/internal/sweeps"
	"github.com/padelhub/backend/internal/worker"
	"github.com/padelhub/backend/pkg/database"
	"github.com/padelhub/backend/pkg/mailer"
	"github.com/padelhub/backend/pkg/queue"
	"github.com/padelhub/backend/pkg/redis"
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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jobQueue := queue.NewQueue(rdb.Client, logger)
	emailLogs := notify.NewEmailLogRepository(pool)
	sender := mailer.NewResend(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress, logger)
	processor := worker.NewEmailProcessor(jobQueue, sender, emailLogs, logger)

	// Sweeps share the notification service with the API but dispatch on
	// timers instead of mutations.
	authRepo := auth.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)
	outbox := notify.NewOutbox(emailLogs, jobQueue, logger)
	notifier := notify.NewService(outbox, authRepo, notificationRepo, cfg.App.BaseURL, logger)

	eventRepo := events.NewRepository(pool)
	markerRepo := sweeps.NewMarkerRepository(pool)
	memoryRepo := memories.NewRepository(pool)

	reminder := sweeps.NewReminderSweep(eventRepo, markerRepo, notifier, time.Local, nil, logger)
	memory := sweeps.NewMemorySweep(eventRepo, memoryRepo, notifier, time.Local, nil, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	go reminder.Run(workerCtx, time.Hour)
	go memory.Run(workerCtx, 6*time.Hour)
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
