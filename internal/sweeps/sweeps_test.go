package sweeps

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padelhub/backend/internal/models"
)

type fakeEvents struct {
	active    []*models.Event
	completed []*models.Event
}

func (f *fakeEvents) ActiveOnDate(_ context.Context, _ string) ([]*models.Event, error) {
	return f.active, nil
}

func (f *fakeEvents) CompletedBetween(_ context.Context, _, _ string) ([]*models.Event, error) {
	return f.completed, nil
}

type fakeMarkers struct {
	claimed map[string]bool
}

func (f *fakeMarkers) TryAcquire(_ context.Context, eventID uuid.UUID, kind, bucket string) (bool, error) {
	if f.claimed == nil {
		f.claimed = map[string]bool{}
	}
	key := eventID.String() + "|" + kind + "|" + bucket
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

type fakeRequests struct {
	created map[uuid.UUID]bool
}

func (f *fakeRequests) TryCreate(_ context.Context, eventID uuid.UUID, _ int) (bool, error) {
	if f.created == nil {
		f.created = map[uuid.UUID]bool{}
	}
	if f.created[eventID] {
		return false, nil
	}
	f.created[eventID] = true
	return true, nil
}

type recordingNotifier struct {
	reminders []uuid.UUID
	shares    []uuid.UUID
}

func (r *recordingNotifier) Reminder(_ context.Context, ev *models.Event) {
	r.reminders = append(r.reminders, ev.ID)
}

func (r *recordingNotifier) MemoryShare(_ context.Context, ev *models.Event) {
	r.shares = append(r.shares, ev.ID)
}

func activeEvent(date, start string) *models.Event {
	return &models.Event{
		ID:        uuid.New(),
		Title:     "Test",
		Date:      date,
		StartTime: start,
		Status:    models.EventStatusActive,
		Players:   []*models.Player{{ID: "a", Email: "a@example.com"}},
	}
}

func TestReminderSweep_WithinTheHour(t *testing.T) {
	now := time.Date(2024, 4, 15, 17, 30, 0, 0, time.UTC)
	ev := activeEvent("2024-04-15", "18:00") // 30 minutes away

	notifier := &recordingNotifier{}
	s := NewReminderSweep(&fakeEvents{active: []*models.Event{ev}}, &fakeMarkers{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	assert.Equal(t, []uuid.UUID{ev.ID}, notifier.reminders)
}

func TestReminderSweep_OutsideTheHour(t *testing.T) {
	now := time.Date(2024, 4, 15, 16, 30, 0, 0, time.UTC)
	ev := activeEvent("2024-04-15", "18:00") // 90 minutes away

	notifier := &recordingNotifier{}
	s := NewReminderSweep(&fakeEvents{active: []*models.Event{ev}}, &fakeMarkers{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	assert.Empty(t, notifier.reminders)
}

func TestReminderSweep_AlreadyStarted(t *testing.T) {
	now := time.Date(2024, 4, 15, 18, 5, 0, 0, time.UTC)
	ev := activeEvent("2024-04-15", "18:00")

	notifier := &recordingNotifier{}
	s := NewReminderSweep(&fakeEvents{active: []*models.Event{ev}}, &fakeMarkers{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	assert.Empty(t, notifier.reminders)
}

func TestReminderSweep_MarkerDedupesSecondRun(t *testing.T) {
	now := time.Date(2024, 4, 15, 17, 30, 0, 0, time.UTC)
	ev := activeEvent("2024-04-15", "18:00")

	notifier := &recordingNotifier{}
	s := NewReminderSweep(&fakeEvents{active: []*models.Event{ev}}, &fakeMarkers{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	require.NoError(t, s.Sweep(context.Background()))
	assert.Len(t, notifier.reminders, 1)
}

func completedEvent(date, end string) *models.Event {
	return &models.Event{
		ID:      uuid.New(),
		Title:   "Test",
		Date:    date,
		EndTime: end,
		Status:  models.EventStatusCompleted,
		Players: []*models.Player{{ID: "a", Email: "a@example.com"}},
	}
}

func TestMemorySweep_DoubleRunSendsOnce(t *testing.T) {
	now := time.Date(2024, 4, 15, 22, 0, 0, 0, time.UTC)
	ev := completedEvent("2024-04-15", "20:00") // ended 2h ago

	notifier := &recordingNotifier{}
	s := NewMemorySweep(&fakeEvents{completed: []*models.Event{ev}}, &fakeRequests{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	require.NoError(t, s.Sweep(context.Background()))
	assert.Len(t, notifier.shares, 1)
}

func TestMemorySweep_TooSoonAfterEnd(t *testing.T) {
	now := time.Date(2024, 4, 15, 20, 30, 0, 0, time.UTC)
	ev := completedEvent("2024-04-15", "20:00") // ended 30 minutes ago

	notifier := &recordingNotifier{}
	s := NewMemorySweep(&fakeEvents{completed: []*models.Event{ev}}, &fakeRequests{}, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	assert.Empty(t, notifier.shares)
}

func TestMemorySweep_SkipsEmptyRoster(t *testing.T) {
	now := time.Date(2024, 4, 15, 22, 0, 0, 0, time.UTC)
	ev := completedEvent("2024-04-15", "20:00")
	ev.Players = []*models.Player{nil}

	requests := &fakeRequests{}
	notifier := &recordingNotifier{}
	s := NewMemorySweep(&fakeEvents{completed: []*models.Event{ev}}, requests, notifier,
		time.UTC, func() time.Time { return now }, nil)

	require.NoError(t, s.Sweep(context.Background()))
	assert.Empty(t, notifier.shares)
	assert.Empty(t, requests.created)
}
