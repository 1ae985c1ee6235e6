package tgbot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/models"
)

type fakeBot struct {
	sent []string
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeVerified struct {
	verified bool
}

func (f *fakeVerified) Verify(context.Context, int64, string) error { return nil }
func (f *fakeVerified) IsVerified(context.Context, int64) (bool, error) {
	return f.verified, nil
}

type fakeEvents struct {
	joins  int
	leaves int
	event  *models.Event
}

func (f *fakeEvents) List(context.Context, string) ([]*models.Event, error) { return nil, nil }
func (f *fakeEvents) Create(context.Context, *models.Event) error           { return nil }

func (f *fakeEvents) Join(_ context.Context, _ uuid.UUID, p models.Player) ([]*models.Player, *models.Event, error) {
	f.joins++
	before := make([]*models.Player, len(f.event.Players))
	copy(before, f.event.Players)
	f.event.Players = append(f.event.Players, &p)
	return before, f.event, nil
}

func (f *fakeEvents) Leave(_ context.Context, _ uuid.UUID, playerID string) ([]*models.Player, *models.Event, error) {
	f.leaves++
	return f.event.Players, f.event, nil
}

func newTestApp(verified bool) (*App, *fakeBot, *fakeEvents) {
	bot := &fakeBot{}
	store := &fakeEvents{event: &models.Event{
		ID:     uuid.New(),
		Title:  "Friday Doubles",
		Status: models.EventStatusActive,
	}}
	app := &App{
		api:      bot,
		verified: &fakeVerified{verified: verified},
		events:   store,
		logger:   zap.NewNop(),
	}
	return app, bot, store
}

func TestLeaveEvent_RequiresVerification(t *testing.T) {
	app, bot, store := newTestApp(false)

	err := app.leaveEvent(context.Background(), 42, uuid.New().String())
	require.NoError(t, err)

	assert.Zero(t, store.leaves, "unverified chat must not reach the event store")
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], "/verify")
}

func TestLeaveEvent_VerifiedProceeds(t *testing.T) {
	app, bot, store := newTestApp(true)
	store.event.Players = []*models.Player{{ID: TelegramID(42), Name: "Ana"}}

	err := app.leaveEvent(context.Background(), 42, store.event.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 1, store.leaves)
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], "You've left")
}

func TestJoinEvent_RequiresVerification(t *testing.T) {
	app, bot, store := newTestApp(false)

	from := &tgbotapi.User{ID: 42, FirstName: "Ana"}
	err := app.joinEvent(context.Background(), 42, from, uuid.New().String())
	require.NoError(t, err)

	assert.Zero(t, store.joins)
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], "/verify")
}
