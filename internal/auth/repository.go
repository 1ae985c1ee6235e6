package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/padelhub/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, role,
	COALESCE(phone,''), COALESCE(skill_level,''), COALESCE(preferred_sports,''), COALESCE(location,''),
	COALESCE(stripe_customer_id,''), COALESCE(subscription_id,''), COALESCE(subscription_status,''), subscription_period_end,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role,
		&u.Phone, &u.SkillLevel, &u.PreferredSports, &u.Location,
		&u.StripeCustomerID, &u.SubscriptionID, &u.SubscriptionStatus, &u.SubscriptionPeriodEnd,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (*models.User, error) {
	const q = `INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, email, passwordHash, fullName, role))
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

// Lookup resolves a roster player id to a platform user. External ids
// ("telegram:<id>") have no user row; both return values are nil then.
func (r *Repository) Lookup(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	u, err := r.GetByID(ctx, uid)
	if err != nil {
		return nil, nil
	}
	return u, nil
}

// UpdateProfile sets the optional profile-completeness fields.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, phone, skillLevel, preferredSports, location string) error {
	const q = `UPDATE users SET
		phone = COALESCE(NULLIF($1,''), phone),
		skill_level = COALESCE(NULLIF($2,''), skill_level),
		preferred_sports = COALESCE(NULLIF($3,''), preferred_sports),
		location = COALESCE(NULLIF($4,''), location),
		updated_at = NOW()
		WHERE id = $5`
	_, err := r.pool.Exec(ctx, q, phone, skillLevel, preferredSports, location, id)
	return err
}
