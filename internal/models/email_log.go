package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailType for the notification pipeline.
const (
	EmailTypeEventCreated      = "event_created"
	EmailTypePlayerJoined      = "player_joined"
	EmailTypeNewPlayer         = "new_player"       // creator copy of a join
	EmailTypePlayerLeft        = "player_left"
	EmailTypePlayerLeftCreator = "player_left_creator"
	EmailTypeReminder          = "reminder_1h"
	EmailTypeMemoryShare       = "memory_share"
	EmailTypeWelcome           = "welcome"
	EmailTypeFeedback          = "feedback"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusPending = "pending"
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
)

// EmailLog is one outbox row: the intended send is recorded here before the
// worker dispatches it, so a crash between mutation and dispatch loses
// nothing and retries are visible.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	EventID        *uuid.UUID `json:"event_id,omitempty"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
