package locations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Repository reads the court catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a locations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all courts ordered by name.
func (r *Repository) List(ctx context.Context) ([]*models.Location, error) {
	const q = `SELECT id, name, address, latitude, longitude FROM locations ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
