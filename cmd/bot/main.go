// Package main runs the Telegram bot front end.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/padelhub/backend/config"
	"github.com/padelhub/backend/internal/auth"
	"github.com/padelhub/backend/internal/events"
	"github.com/padelhub/backend/internal/notifications"
	"github.com/padelhub/backend/internal/notify"
	"github.com/padelhub/backend/internal/tgbot"
	"github.com/padelhub/backend/pkg/database"
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
	if cfg.Telegram.Token == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is required")
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

	// The bot shares the notification pipeline with the HTTP API: the same
	// triggers fire whether an event was created on the web or in a chat.
	jobQueue := queue.NewQueue(rdb.Client, logger)
	authRepo := auth.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)
	emailLogs := notify.NewEmailLogRepository(pool)
	outbox := notify.NewOutbox(emailLogs, jobQueue, logger)
	notifier := notify.NewService(outbox, authRepo, notificationRepo, cfg.App.BaseURL, logger)

	eventRepo := events.NewRepository(pool)
	sessions := tgbot.NewSessionStore(rdb.Client)
	verified := tgbot.NewVerifiedStore(pool)

	app, err := tgbot.New(cfg.Telegram.Token, sessions, verified, eventRepo, notifier, logger)
	if err != nil {
		logger.Fatal("bot", zap.Error(err))
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	if err := app.Run(runCtx); err != nil && err != context.Canceled {
		logger.Fatal("bot run", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
