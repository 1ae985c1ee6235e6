package sweeps

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkerRepository persists notification_markers rows. A marker is a claim:
// inserting it succeeds exactly once per (event, kind, bucket), so two sweep
// runs racing over the same window dispatch once.
type MarkerRepository struct {
	pool *pgxpool.Pool
}

// NewMarkerRepository creates a marker repository.
func NewMarkerRepository(pool *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{pool: pool}
}

// TryAcquire inserts the marker and reports whether this caller won it.
func (r *MarkerRepository) TryAcquire(ctx context.Context, eventID uuid.UUID, kind, bucket string) (bool, error) {
	const q = `INSERT INTO notification_markers (event_id, kind, bucket)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, kind, bucket) DO NOTHING`
	tag, err := r.pool.Exec(ctx, q, eventID, kind, bucket)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
