package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/padelhub/backend/internal/models"
)

type queuedEmail struct {
	EmailType string
	Recipient string
}

type fakeOutbox struct {
	queued []queuedEmail
}

func (f *fakeOutbox) Queue(_ context.Context, _ *uuid.UUID, emailType, recipient string, _ Email) error {
	f.queued = append(f.queued, queuedEmail{EmailType: emailType, Recipient: recipient})
	return nil
}

type fakeUsers struct {
	byID map[string]*models.User
}

func (f *fakeUsers) Lookup(_ context.Context, id string) (*models.User, error) {
	return f.byID[id], nil
}

type fakeNotifications struct {
	rows []*models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.rows = append(f.rows, n)
	return nil
}

func testService(outbox *fakeOutbox, notifications *fakeNotifications, creatorID string) *Service {
	users := &fakeUsers{byID: map[string]*models.User{
		creatorID: {Email: "creator@example.com", FullName: "Ana"},
	}}
	return NewService(outbox, users, notifications, "https://app.example.com", nil)
}

func rosterEvent(creatorID string) *models.Event {
	return &models.Event{
		ID:         uuid.New(),
		Title:      "Friday Doubles",
		Date:       "2024-04-15",
		StartTime:  "18:00",
		MaxPlayers: 4,
		CreatedBy:  creatorID,
	}
}

func TestRosterChanged_JoinFansOut(t *testing.T) {
	creatorID := uuid.New().String()
	outbox := &fakeOutbox{}
	notifications := &fakeNotifications{}
	svc := testService(outbox, notifications, creatorID)

	ev := rosterEvent(creatorID)
	joiner := &models.Player{ID: "u2", Name: "Ben", Email: "ben@example.com"}
	ev.Players = []*models.Player{joiner}

	svc.RosterChanged(context.Background(), ev, nil, ev.Players)

	assert.Equal(t, []queuedEmail{
		{EmailType: models.EmailTypePlayerJoined, Recipient: "ben@example.com"},
		{EmailType: models.EmailTypeNewPlayer, Recipient: "creator@example.com"},
	}, outbox.queued)

	assert.Len(t, notifications.rows, 1)
	assert.Equal(t, models.NotificationTypePlayerJoined, notifications.rows[0].Type)
	assert.Equal(t, creatorID, notifications.rows[0].RecipientID)
}

func TestRosterChanged_UnchangedShortCircuits(t *testing.T) {
	creatorID := uuid.New().String()
	outbox := &fakeOutbox{}
	svc := testService(outbox, &fakeNotifications{}, creatorID)

	ev := rosterEvent(creatorID)
	roster := []*models.Player{{ID: "u2", Email: "ben@example.com"}}
	ev.Players = roster

	svc.RosterChanged(context.Background(), ev, roster, roster)

	assert.Empty(t, outbox.queued)
}

func TestRosterChanged_SkipsPlayersWithoutEmail(t *testing.T) {
	creatorID := uuid.New().String()
	outbox := &fakeOutbox{}
	svc := testService(outbox, &fakeNotifications{}, creatorID)

	ev := rosterEvent(creatorID)
	// telegram joiner: no email on the roster entry
	ev.Players = []*models.Player{{ID: "telegram:42", Name: "@ben"}}

	svc.RosterChanged(context.Background(), ev, nil, ev.Players)

	// only the creator copy goes out
	assert.Equal(t, []queuedEmail{
		{EmailType: models.EmailTypeNewPlayer, Recipient: "creator@example.com"},
	}, outbox.queued)
}

func TestRosterChanged_Leave(t *testing.T) {
	creatorID := uuid.New().String()
	outbox := &fakeOutbox{}
	svc := testService(outbox, &fakeNotifications{}, creatorID)

	ev := rosterEvent(creatorID)
	leaver := &models.Player{ID: "u2", Email: "ben@example.com"}
	before := []*models.Player{leaver}
	ev.Players = []*models.Player{}

	svc.RosterChanged(context.Background(), ev, before, ev.Players)

	assert.Equal(t, []queuedEmail{
		{EmailType: models.EmailTypePlayerLeft, Recipient: "ben@example.com"},
		{EmailType: models.EmailTypePlayerLeftCreator, Recipient: "creator@example.com"},
	}, outbox.queued)
}

func TestEventCreated_TelegramCreatorHasNoEmail(t *testing.T) {
	outbox := &fakeOutbox{}
	notifications := &fakeNotifications{}
	svc := NewService(outbox, &fakeUsers{byID: map[string]*models.User{}}, notifications, "", nil)

	ev := rosterEvent("telegram:42")
	svc.EventCreated(context.Background(), ev)

	assert.Empty(t, outbox.queued)
	assert.Len(t, notifications.rows, 1, "the in-app row is still recorded")
}

func TestReminder_FansOutToRoster(t *testing.T) {
	creatorID := uuid.New().String()
	outbox := &fakeOutbox{}
	svc := testService(outbox, &fakeNotifications{}, creatorID)

	ev := rosterEvent(creatorID)
	ev.Players = []*models.Player{
		{ID: "u1", Email: "a@example.com"},
		nil,
		{ID: "telegram:7"},
		{ID: "u2", Email: "b@example.com"},
	}

	svc.Reminder(context.Background(), ev)

	assert.Equal(t, []queuedEmail{
		{EmailType: models.EmailTypeReminder, Recipient: "a@example.com"},
		{EmailType: models.EmailTypeReminder, Recipient: "b@example.com"},
	}, outbox.queued)
}
