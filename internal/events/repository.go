package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Roster mutation errors surfaced to handlers.
var (
	ErrEventNotActive = errors.New("event is not active")
	ErrRosterFull     = errors.New("event is full")
	ErrAlreadyJoined  = errors.New("already in the roster")
	ErrNotInRoster    = errors.New("not in the roster")
)

// errNoChange is returned by a roster mutation that decided the roster is
// already in the desired state. UpdateRoster then skips the write so
// updated_at is not bumped for a no-op.
var errNoChange = errors.New("roster unchanged")

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, title, description, event_date, start_time, end_time,
	location_name, location_address, latitude, longitude, skill_level,
	price, max_players, players, status, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var ev models.Event
	var date time.Time
	var players []byte
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &date, &ev.StartTime, &ev.EndTime,
		&ev.LocationName, &ev.LocationAddress, &ev.Latitude, &ev.Longitude, &ev.SkillLevel,
		&ev.Price, &ev.MaxPlayers, &players, &ev.Status, &ev.CreatedBy, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ev.Date = date.Format("2006-01-02")
	if err := json.Unmarshal(players, &ev.Players); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return &ev, nil
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, ev *models.Event) error {
	players, err := json.Marshal(ev.Players)
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}
	if ev.Status == "" {
		ev.Status = models.EventStatusActive
	}
	const q = `INSERT INTO events (title, description, event_date, start_time, end_time,
			location_name, location_address, latitude, longitude, skill_level,
			price, max_players, players, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, ev.Title, ev.Description, ev.Date, ev.StartTime, ev.EndTime,
		ev.LocationName, ev.LocationAddress, ev.Latitude, ev.Longitude, ev.SkillLevel,
		ev.Price, ev.MaxPlayers, players, ev.Status, ev.CreatedBy).
		Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt)
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

// List returns events, optionally filtered by status, soonest first.
func (r *Repository) List(ctx context.Context, status string) ([]*models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY event_date, start_time`
	return r.queryEvents(ctx, q, args...)
}

// ActiveOnDate returns active events scheduled for the given calendar date.
func (r *Repository) ActiveOnDate(ctx context.Context, date string) ([]*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events
		WHERE status = 'active' AND event_date = $1
		ORDER BY start_time`
	return r.queryEvents(ctx, q, date)
}

// CompletedBetween returns completed events dated within [from, to].
func (r *Repository) CompletedBetween(ctx context.Context, from, to string) ([]*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events
		WHERE status = 'completed' AND event_date BETWEEN $1 AND $2
		ORDER BY event_date, start_time`
	return r.queryEvents(ctx, q, from, to)
}

func (r *Repository) queryEvents(ctx context.Context, q string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// Update patches mutable event fields. Empty strings / nil leave the column alone.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, title, description, status *string) error {
	const q = `UPDATE events SET
		title = COALESCE($1, title),
		description = COALESCE($2, description),
		status = COALESCE($3, status),
		updated_at = NOW()
		WHERE id = $4`
	_, err := r.pool.Exec(ctx, q, title, description, status, id)
	return err
}

// Delete removes an event by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

// UpdateRoster applies mutate to the event's roster under a row lock and
// persists the result. It returns the pre-mutation snapshot and the updated
// event so callers can run the diff-then-dispatch sequence against a
// consistent before/after pair.
func (r *Repository) UpdateRoster(ctx context.Context, id uuid.UUID, mutate func(ev *models.Event) error) (before []*models.Player, ev *models.Event, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	ev, err = scanEvent(tx.QueryRow(ctx, q, id))
	if err != nil {
		return nil, nil, err
	}

	before = CloneRoster(ev.Players)
	if err := mutate(ev); err != nil {
		if errors.Is(err, errNoChange) {
			return before, ev, nil
		}
		return nil, nil, err
	}

	players, err := json.Marshal(ev.Players)
	if err != nil {
		return nil, nil, fmt.Errorf("encode players: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE events SET players = $1, updated_at = NOW() WHERE id = $2`, players, id); err != nil {
		return nil, nil, fmt.Errorf("update roster: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return before, ev, nil
}

// Join appends the player to the roster, filling the first open slot if one
// exists. Capacity counts non-nil entries only.
func (r *Repository) Join(ctx context.Context, id uuid.UUID, player models.Player) (before []*models.Player, ev *models.Event, err error) {
	return r.UpdateRoster(ctx, id, func(ev *models.Event) error {
		if ev.Status != models.EventStatusActive {
			return ErrEventNotActive
		}
		if ev.FindPlayer(player.ID) != nil {
			return ErrAlreadyJoined
		}
		if len(ev.ActivePlayers()) >= ev.MaxPlayers {
			return ErrRosterFull
		}
		for i, p := range ev.Players {
			if p == nil {
				cp := player
				ev.Players[i] = &cp
				return nil
			}
		}
		cp := player
		ev.Players = append(ev.Players, &cp)
		return nil
	})
}

// Leave splices the player out of the roster.
func (r *Repository) Leave(ctx context.Context, id uuid.UUID, playerID string) (before []*models.Player, ev *models.Event, err error) {
	return r.UpdateRoster(ctx, id, func(ev *models.Event) error {
		for i, p := range ev.Players {
			if p != nil && p.ID == playerID {
				ev.Players = append(ev.Players[:i], ev.Players[i+1:]...)
				return nil
			}
		}
		return ErrNotInRoster
	})
}

// markPaid flips the matching roster entry to paid. Returns errNoChange when
// no entry matches; other entries are never touched.
func markPaid(ev *models.Event, playerID string) error {
	p := ev.FindPlayer(playerID)
	if p == nil {
		return errNoChange
	}
	p.PaymentStatus = models.PlayerPaymentPaid
	return nil
}

// MarkPlayerPaid sets payment_status = "paid" on the matching roster entry.
// Returns false when no entry matches; the roster row is left untouched in
// that case.
func (r *Repository) MarkPlayerPaid(ctx context.Context, id uuid.UUID, playerID string) (found bool, err error) {
	_, _, err = r.UpdateRoster(ctx, id, func(ev *models.Event) error {
		err := markPaid(ev, playerID)
		found = err == nil
		return err
	})
	return found, err
}
