package models

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus values.
const (
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// PlayerPaymentPaid marks a roster entry whose checkout completed.
const PlayerPaymentPaid = "paid"

// Player is one roster entry embedded in an event. ID is either a platform
// user id (uuid string) or an external id such as "telegram:12345".
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// Event represents a padel event. Players is the ordered roster; nil entries
// are open-slot placeholders and must be filtered before counting.
type Event struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Date            string    `json:"date"`       // "2006-01-02"
	StartTime       string    `json:"start_time"` // "15:04"
	EndTime         string    `json:"end_time"`
	LocationName    string    `json:"location_name"`
	LocationAddress string    `json:"location_address,omitempty"`
	Latitude        float64   `json:"latitude,omitempty"`
	Longitude       float64   `json:"longitude,omitempty"`
	SkillLevel      string    `json:"skill_level,omitempty"`
	Price           float64   `json:"price"`
	MaxPlayers      int       `json:"max_players"`
	Players         []*Player `json:"players"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ActivePlayers returns the roster without nil placeholders, in order.
func (e *Event) ActivePlayers() []Player {
	out := make([]Player, 0, len(e.Players))
	for _, p := range e.Players {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// FindPlayer returns the roster entry with the given id, or nil.
func (e *Event) FindPlayer(id string) *Player {
	for _, p := range e.Players {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// StartInstant resolves Date + StartTime into a same-day instant in loc.
func (e *Event) StartInstant(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.StartTime, loc)
}

// EndInstant resolves Date + EndTime into a same-day instant in loc.
func (e *Event) EndInstant(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.EndTime, loc)
}
