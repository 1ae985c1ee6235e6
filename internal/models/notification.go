package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationTypeNewEvent     = "new_event"
	NotificationTypePlayerJoined = "player_joined"
)

// Notification is an in-app notification row. Purely additive: rows are
// created by the trigger paths and listed; there is no update/delete path.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	EventID     uuid.UUID `json:"event_id"`
	ActorID     string    `json:"actor_id,omitempty"`
	RecipientID string    `json:"recipient_id"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemoryRequest gates repeated memory-share invitations for an event.
// Its mere existence is the idempotency marker checked by the sweep.
type MemoryRequest struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	SentAt      time.Time `json:"sent_at"`
	PlayerCount int       `json:"player_count"`
}
