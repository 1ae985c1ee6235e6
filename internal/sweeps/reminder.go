package sweeps

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/models"
)

// MarkerKindReminder is the dedup kind for the one-hour reminder.
const MarkerKindReminder = "reminder_1h"

// EventSource is the slice of the events repository the sweeps read.
type EventSource interface {
	ActiveOnDate(ctx context.Context, date string) ([]*models.Event, error)
	CompletedBetween(ctx context.Context, from, to string) ([]*models.Event, error)
}

// MarkerStore claims per-event dedup markers.
type MarkerStore interface {
	TryAcquire(ctx context.Context, eventID uuid.UUID, kind, bucket string) (bool, error)
}

// Notifier is the slice of the notification service the sweeps dispatch to.
type Notifier interface {
	Reminder(ctx context.Context, ev *models.Event)
	MemoryShare(ctx context.Context, ev *models.Event)
}

// ReminderSweep finds active events starting within the next hour and queues
// one reminder per roster player. A marker keyed by the event's date+start
// keeps overlapping runs from doubling up.
type ReminderSweep struct {
	events   EventSource
	markers  MarkerStore
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewReminderSweep creates the reminder sweep. loc is the timezone event
// times are interpreted in; now defaults to time.Now.
func NewReminderSweep(events EventSource, markers MarkerStore, notifier Notifier, loc *time.Location, now func() time.Time, logger *zap.Logger) *ReminderSweep {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderSweep{events: events, markers: markers, notifier: notifier, loc: loc, now: now, logger: logger}
}

// Sweep runs one pass.
func (s *ReminderSweep) Sweep(ctx context.Context) error {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")

	list, err := s.events.ActiveOnDate(ctx, today)
	if err != nil {
		return err
	}
	for _, ev := range list {
		start, err := ev.StartInstant(s.loc)
		if err != nil {
			s.logger.Warn("unparseable start time", zap.String("event_id", ev.ID.String()),
				zap.String("start_time", ev.StartTime), zap.Error(err))
			continue
		}
		until := start.Sub(now)
		if until <= 0 || until > time.Hour {
			continue
		}
		bucket := ev.Date + " " + ev.StartTime
		won, err := s.markers.TryAcquire(ctx, ev.ID, MarkerKindReminder, bucket)
		if err != nil {
			s.logger.Error("acquire reminder marker failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
			continue
		}
		if !won {
			continue
		}
		s.notifier.Reminder(ctx, ev)
		s.logger.Info("reminder dispatched",
			zap.String("event_id", ev.ID.String()),
			zap.Int("players", len(ev.ActivePlayers())),
		)
	}
	return nil
}

// Run sweeps on the interval until ctx is done.
func (s *ReminderSweep) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.logger.Info("reminder sweep started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder sweep stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("reminder sweep failed", zap.Error(err))
			}
		}
	}
}
