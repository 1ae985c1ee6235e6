package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/pkg/mailer"
	"github.com/padelhub/backend/pkg/queue"
)

// LogStore is the slice of the email log repository the worker writes.
type LogStore interface {
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, msg string) error
}

// EmailProcessor drains the outbox queue and delivers email.
type EmailProcessor struct {
	queue  *queue.Queue
	sender mailer.Sender
	logs   LogStore
	logger *zap.Logger
}

// NewEmailProcessor creates the outbox email worker.
func NewEmailProcessor(q *queue.Queue, sender mailer.Sender, logs LogStore, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{queue: q, sender: sender, logs: logs, logger: logger}
}

// Process handles one job. Send failures are retried through the queue; the
// outbox row is marked failed only once the job lands in the DLQ.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) {
	if job.Type != queue.JobTypeEmail {
		p.logger.Warn("skipping unknown job type", zap.String("type", string(job.Type)), zap.String("job_id", job.ID))
		return
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		p.logger.Error("invalid email payload", zap.String("job_id", job.ID), zap.Error(err))
		return
	}

	err := p.sender.Send(ctx, mailer.Message{
		To:      payload.RecipientEmail,
		Subject: payload.Subject,
		HTML:    payload.BodyHTML,
	})
	if err == nil {
		if err := p.logs.MarkSent(ctx, payload.EmailLogID); err != nil {
			p.logger.Error("mark sent failed", zap.String("email_log_id", payload.EmailLogID.String()), zap.Error(err))
		}
		p.logger.Info("email sent",
			zap.String("email_type", payload.EmailType),
			zap.String("recipient", payload.RecipientEmail),
		)
		return
	}

	p.logger.Error("send failed",
		zap.String("email_type", payload.EmailType),
		zap.String("recipient", payload.RecipientEmail),
		zap.Int("attempt", job.Attempt),
		zap.Error(err),
	)
	if job.Attempt+1 >= queue.MaxRetries {
		if err := p.logs.MarkFailed(ctx, payload.EmailLogID, err.Error()); err != nil {
			p.logger.Error("mark failed failed", zap.String("email_log_id", payload.EmailLogID.String()), zap.Error(err))
		}
	}
	time.Sleep(queue.RetryBackoff)
	if err := p.queue.Retry(ctx, job); err != nil {
		p.logger.Error("retry failed", zap.String("job_id", job.ID), zap.Error(err))
	}
}

// Run dequeues jobs until ctx is done.
func (p *EmailProcessor) Run(ctx context.Context) error {
	p.logger.Info("email worker started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopped")
			return ctx.Err()
		default:
		}
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		p.Process(ctx, job)
	}
}
