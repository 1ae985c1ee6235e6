package notifications

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Repository persists in-app notifications.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a notification row.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO notifications (type, event_id, actor_id, recipient_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, n.Type, n.EventID, n.ActorID, n.RecipientID).
		Scan(&n.ID, &n.CreatedAt)
}

// ListByRecipient returns a user's notifications, newest first.
func (r *Repository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	const q = `SELECT id, type, event_id, actor_id, recipient_id, read, created_at
		FROM notifications WHERE recipient_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, q, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.EventID, &n.ActorID, &n.RecipientID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead flags a notification as read.
func (r *Repository) MarkRead(ctx context.Context, id string, recipientID string) error {
	const q = `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`
	_, err := r.pool.Exec(ctx, q, id, recipientID)
	return err
}
