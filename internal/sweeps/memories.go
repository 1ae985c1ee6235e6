package sweeps

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryRequestStore claims the one-per-event memory invitation marker.
type MemoryRequestStore interface {
	TryCreate(ctx context.Context, eventID uuid.UUID, playerCount int) (bool, error)
}

// MemorySweep finds recently completed events and invites their rosters to
// share photos, at most once per event. The memory_requests row is written
// before the send, so a crash mid-dispatch skips the event on the next run
// rather than spamming it.
type MemorySweep struct {
	events   EventSource
	requests MemoryRequestStore
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewMemorySweep creates the memory sweep.
func NewMemorySweep(events EventSource, requests MemoryRequestStore, notifier Notifier, loc *time.Location, now func() time.Time, logger *zap.Logger) *MemorySweep {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemorySweep{events: events, requests: requests, notifier: notifier, loc: loc, now: now, logger: logger}
}

// Sweep runs one pass. Eligible events are completed, ended between 1 and 24
// hours ago, and have no memory request yet.
func (s *MemorySweep) Sweep(ctx context.Context) error {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	list, err := s.events.CompletedBetween(ctx, yesterday, today)
	if err != nil {
		return err
	}
	for _, ev := range list {
		if ev.EndTime == "" {
			continue
		}
		end, err := ev.EndInstant(s.loc)
		if err != nil {
			s.logger.Warn("unparseable end time", zap.String("event_id", ev.ID.String()),
				zap.String("end_time", ev.EndTime), zap.Error(err))
			continue
		}
		since := now.Sub(end)
		if since < time.Hour || since > 24*time.Hour {
			continue
		}
		players := ev.ActivePlayers()
		if len(players) == 0 {
			continue
		}
		won, err := s.requests.TryCreate(ctx, ev.ID, len(players))
		if err != nil {
			s.logger.Error("create memory request failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
			continue
		}
		if !won {
			continue
		}
		s.notifier.MemoryShare(ctx, ev)
		s.logger.Info("memory invitation dispatched",
			zap.String("event_id", ev.ID.String()),
			zap.Int("players", len(players)),
		)
	}
	return nil
}

// Run sweeps on the interval until ctx is done.
func (s *MemorySweep) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.logger.Info("memory sweep started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("memory sweep stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("memory sweep failed", zap.Error(err))
			}
		}
	}
}
