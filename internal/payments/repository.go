package payments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Repository persists payment sessions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a payments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a pending payment row for a new checkout session.
func (r *Repository) Create(ctx context.Context, p *models.Payment) error {
	const q = `INSERT INTO payments (event_id, user_id, provider, provider_session_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	return r.pool.QueryRow(ctx, q, p.EventID, p.UserID, p.Provider, p.ProviderSessionID,
		p.Amount, p.Currency, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetBySessionID returns the payment row for a provider session id.
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	const q = `SELECT id, event_id, user_id, provider, provider_session_id, amount, currency, status, created_at, updated_at
		FROM payments WHERE provider_session_id = $1`
	var p models.Payment
	err := r.pool.QueryRow(ctx, q, sessionID).
		Scan(&p.ID, &p.EventID, &p.UserID, &p.Provider, &p.ProviderSessionID,
			&p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkCompleted flips the row for a provider session to completed.
func (r *Repository) MarkCompleted(ctx context.Context, sessionID string) error {
	const q = `UPDATE payments SET status = 'completed', updated_at = NOW()
		WHERE provider_session_id = $1`
	_, err := r.pool.Exec(ctx, q, sessionID)
	return err
}
