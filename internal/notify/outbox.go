package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/models"
	"github.com/padelhub/backend/pkg/queue"
)

// EmailLogRepository persists outbox rows in email_logs.
type EmailLogRepository struct {
	pool *pgxpool.Pool
}

// NewEmailLogRepository creates an email log repository.
func NewEmailLogRepository(pool *pgxpool.Pool) *EmailLogRepository {
	return &EmailLogRepository{pool: pool}
}

// Create inserts a pending outbox row and returns its id.
func (r *EmailLogRepository) Create(ctx context.Context, eventID *uuid.UUID, emailType, recipient, subject string) (uuid.UUID, error) {
	const q = `INSERT INTO email_logs (event_id, email_type, recipient_email, subject, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id`
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, eventID, emailType, recipient, subject).Scan(&id)
	return id, err
}

// MarkSent flips the row to sent.
func (r *EmailLogRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE email_logs SET status = 'sent', sent_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

// MarkFailed flips the row to failed and records the error.
func (r *EmailLogRepository) MarkFailed(ctx context.Context, id uuid.UUID, msg string) error {
	const q = `UPDATE email_logs SET status = 'failed', error_message = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, msg)
	return err
}

// ListByEvent returns outbox rows for an event, newest first.
func (r *EmailLogRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.EmailLog, error) {
	const q = `SELECT id, event_id, email_type, recipient_email, COALESCE(subject, ''), status, sent_at,
			COALESCE(error_message, ''), created_at
		FROM email_logs WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.EventID, &l.EmailType, &l.RecipientEmail, &l.Subject,
			&l.Status, &l.SentAt, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Outbox records intended sends and enqueues the delivery job. Recording
// first means a crash between the row and the enqueue leaves a visible
// pending row instead of silently losing the send.
type Outbox struct {
	logs   *EmailLogRepository
	queue  *queue.Queue
	logger *zap.Logger
}

// NewOutbox creates the outbox writer.
func NewOutbox(logs *EmailLogRepository, q *queue.Queue, logger *zap.Logger) *Outbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Outbox{logs: logs, queue: q, logger: logger}
}

// Queue writes the outbox row and enqueues the email job.
func (o *Outbox) Queue(ctx context.Context, eventID *uuid.UUID, emailType, recipient string, msg Email) error {
	logID, err := o.logs.Create(ctx, eventID, emailType, recipient, msg.Subject)
	if err != nil {
		return fmt.Errorf("outbox row: %w", err)
	}
	err = o.queue.EnqueueEmail(ctx, queue.EmailPayload{
		EmailLogID:     logID,
		EventID:        eventID,
		EmailType:      emailType,
		RecipientEmail: recipient,
		Subject:        msg.Subject,
		BodyHTML:       msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}
