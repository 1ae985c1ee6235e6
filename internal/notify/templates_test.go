package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padelhub/backend/internal/models"
)

func testEvent(price float64) *models.Event {
	return &models.Event{
		Title:        "Friday Doubles",
		Date:         "2024-04-15",
		StartTime:    "18:00",
		LocationName: "Padel Central",
		Price:        price,
		MaxPlayers:   4,
	}
}

func TestRenderEventCreated(t *testing.T) {
	msg := RenderEventCreated(testEvent(12.5), "Ana")

	assert.Equal(t, "Your padel event is live: Friday Doubles", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Ana!")
	assert.Contains(t, msg.HTML, "Friday Doubles")
	assert.Contains(t, msg.HTML, "2024-04-15 at 18:00")
	assert.Contains(t, msg.HTML, "Padel Central")
	assert.Contains(t, msg.HTML, "€12.5")
}

func TestRenderOmitsPriceLineWhenFree(t *testing.T) {
	msg := RenderEventCreated(testEvent(0), "Ana")
	assert.NotContains(t, msg.HTML, "€")
	assert.NotContains(t, msg.HTML, "per player")
}

func TestPricePassesThroughWithoutRounding(t *testing.T) {
	assert.Equal(t, "€15", formatPrice(15))
	assert.Equal(t, "€12.5", formatPrice(12.5))
	assert.Equal(t, "€9.99", formatPrice(9.99))
}

func TestRenderJoinLeavePair(t *testing.T) {
	ev := testEvent(10)
	player := models.Player{ID: "u1", Name: "Ben"}

	joined := RenderPlayerJoined(ev, player)
	assert.Equal(t, "You're in: Friday Doubles", joined.Subject)
	assert.Contains(t, joined.HTML, "Hi Ben!")

	creatorCopy := RenderNewPlayer(ev, player, 2)
	assert.Equal(t, "Ben joined Friday Doubles", creatorCopy.Subject)
	assert.Contains(t, creatorCopy.HTML, "2 spot(s) left")

	left := RenderPlayerLeft(ev, player)
	assert.Equal(t, "You've left: Friday Doubles", left.Subject)

	creatorLeft := RenderPlayerLeftCreator(ev, player, 3)
	assert.Equal(t, "Ben left Friday Doubles", creatorLeft.Subject)
	assert.Contains(t, creatorLeft.HTML, "3 spot(s) are now open")
}

func TestRenderReminderAndMemoryShare(t *testing.T) {
	ev := testEvent(0)
	player := models.Player{ID: "u1", Name: "Ben"}

	reminder := RenderReminder(ev, player)
	assert.Equal(t, "Starting soon: Friday Doubles", reminder.Subject)
	assert.Contains(t, reminder.HTML, "starts in about an hour")

	share := RenderMemoryShare(ev, player, "https://app.example.com/events/x/memories")
	assert.Equal(t, "Share your memories from Friday Doubles", share.Subject)
	assert.Contains(t, share.HTML, `href="https://app.example.com/events/x/memories"`)

	noLink := RenderMemoryShare(ev, player, "")
	assert.NotContains(t, noLink.HTML, "href")
}

func TestRenderWelcome(t *testing.T) {
	msg := RenderWelcome("Ana")
	assert.Equal(t, "Welcome to PadelHub!", msg.Subject)
	assert.Contains(t, msg.HTML, "Welcome, Ana!")
}
