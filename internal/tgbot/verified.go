package tgbot

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VerifiedStore persists phone-verified Telegram users. The id column holds
// the roster identity "telegram:<chat id>".
type VerifiedStore struct {
	pool *pgxpool.Pool
}

// NewVerifiedStore creates the verified users repository.
func NewVerifiedStore(pool *pgxpool.Pool) *VerifiedStore {
	return &VerifiedStore{pool: pool}
}

// TelegramID returns the roster identity for a chat.
func TelegramID(chatID int64) string {
	return fmt.Sprintf("telegram:%d", chatID)
}

// Verify records a phone-verified chat, updating the phone on re-share.
func (s *VerifiedStore) Verify(ctx context.Context, chatID int64, phone string) error {
	const q = `INSERT INTO verified_users (id, phone)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET phone = EXCLUDED.phone, verified_at = NOW()`
	_, err := s.pool.Exec(ctx, q, TelegramID(chatID), phone)
	return err
}

// IsVerified reports whether the chat has shared a phone number.
func (s *VerifiedStore) IsVerified(ctx context.Context, chatID int64) (bool, error) {
	const q = `SELECT 1 FROM verified_users WHERE id = $1`
	var one int
	err := s.pool.QueryRow(ctx, q, TelegramID(chatID)).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
