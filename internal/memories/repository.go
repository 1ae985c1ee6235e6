package memories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Repository persists memory_requests markers.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a memory requests repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TryCreate inserts the per-event marker and reports whether this caller
// created it. The UNIQUE constraint on event_id makes the invitation
// once-per-event even when sweeps overlap.
func (r *Repository) TryCreate(ctx context.Context, eventID uuid.UUID, playerCount int) (bool, error) {
	const q = `INSERT INTO memory_requests (event_id, player_count)
		VALUES ($1, $2)
		ON CONFLICT (event_id) DO NOTHING`
	tag, err := r.pool.Exec(ctx, q, eventID, playerCount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// GetByEventID returns the marker for an event, or pgx.ErrNoRows.
func (r *Repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*models.MemoryRequest, error) {
	const q = `SELECT id, event_id, sent_at, player_count FROM memory_requests WHERE event_id = $1`
	var m models.MemoryRequest
	err := r.pool.QueryRow(ctx, q, eventID).Scan(&m.ID, &m.EventID, &m.SentAt, &m.PlayerCount)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
