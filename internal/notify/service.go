package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/events"
	"github.com/padelhub/backend/internal/models"
)

// UserSource resolves platform profiles for roster entries. Lookup returns
// (nil, nil) for external ids such as "telegram:<id>" that have no profile.
type UserSource interface {
	Lookup(ctx context.Context, id string) (*models.User, error)
}

// NotificationWriter records in-app notification rows.
type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// OutboxWriter queues one rendered email. Implemented by Outbox.
type OutboxWriter interface {
	Queue(ctx context.Context, eventID *uuid.UUID, emailType, recipient string, msg Email) error
}

// Service is the trigger fan-out: given a mutation's before/after state it
// decides whom to notify and queues the emails through the outbox. Every
// failure here is logged and swallowed; a notification must never fail the
// mutation that caused it.
type Service struct {
	outbox        OutboxWriter
	users         UserSource
	notifications NotificationWriter
	appBaseURL    string
	logger        *zap.Logger
}

// NewService creates the notification service.
func NewService(outbox OutboxWriter, users UserSource, notifications NotificationWriter, appBaseURL string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		outbox:        outbox,
		users:         users,
		notifications: notifications,
		appBaseURL:    appBaseURL,
		logger:        logger,
	}
}

// EventCreated confirms a new event to its creator.
func (s *Service) EventCreated(ctx context.Context, ev *models.Event) {
	creator, err := s.users.Lookup(ctx, ev.CreatedBy)
	if err != nil {
		s.logger.Error("lookup creator failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		return
	}
	if creator != nil && creator.Email != "" {
		s.queue(ctx, ev, models.EmailTypeEventCreated, creator.Email, RenderEventCreated(ev, creator.FullName))
	}
	s.record(ctx, &models.Notification{
		Type:        models.NotificationTypeNewEvent,
		EventID:     ev.ID,
		ActorID:     ev.CreatedBy,
		RecipientID: ev.CreatedBy,
	})
}

// RosterChanged diffs the snapshots and fans out join/leave emails. Deeply
// equal snapshots short-circuit everything.
func (s *Service) RosterChanged(ctx context.Context, ev *models.Event, before, after []*models.Player) {
	if events.Unchanged(before, after) {
		return
	}
	joined, left := events.Diff(before, after)

	creatorEmail := ""
	if creator, err := s.users.Lookup(ctx, ev.CreatedBy); err == nil && creator != nil {
		creatorEmail = creator.Email
	}
	spotsLeft := ev.MaxPlayers - len(ev.ActivePlayers())

	for _, p := range joined {
		if p.Email != "" {
			s.queue(ctx, ev, models.EmailTypePlayerJoined, p.Email, RenderPlayerJoined(ev, p))
		}
		if creatorEmail != "" && creatorEmail != p.Email {
			s.queue(ctx, ev, models.EmailTypeNewPlayer, creatorEmail, RenderNewPlayer(ev, p, spotsLeft))
		}
		s.record(ctx, &models.Notification{
			Type:        models.NotificationTypePlayerJoined,
			EventID:     ev.ID,
			ActorID:     p.ID,
			RecipientID: ev.CreatedBy,
		})
	}
	for _, p := range left {
		if p.Email != "" {
			s.queue(ctx, ev, models.EmailTypePlayerLeft, p.Email, RenderPlayerLeft(ev, p))
		}
		if creatorEmail != "" && creatorEmail != p.Email {
			s.queue(ctx, ev, models.EmailTypePlayerLeftCreator, creatorEmail, RenderPlayerLeftCreator(ev, p, spotsLeft))
		}
	}
}

// Reminder queues the one-hour reminder for every roster player with an
// email address.
func (s *Service) Reminder(ctx context.Context, ev *models.Event) {
	for _, p := range ev.ActivePlayers() {
		if p.Email == "" {
			continue
		}
		s.queue(ctx, ev, models.EmailTypeReminder, p.Email, RenderReminder(ev, p))
	}
}

// MemoryShare invites every roster player to upload photos from the event.
func (s *Service) MemoryShare(ctx context.Context, ev *models.Event) {
	uploadURL := ""
	if s.appBaseURL != "" {
		uploadURL = fmt.Sprintf("%s/events/%s/memories", s.appBaseURL, ev.ID)
	}
	for _, p := range ev.ActivePlayers() {
		if p.Email == "" {
			continue
		}
		s.queue(ctx, ev, models.EmailTypeMemoryShare, p.Email, RenderMemoryShare(ev, p, uploadURL))
	}
}

// Welcome queues the registration greeting.
func (s *Service) Welcome(ctx context.Context, email, name string) {
	msg := RenderWelcome(name)
	if err := s.outbox.Queue(ctx, nil, models.EmailTypeWelcome, email, msg); err != nil {
		s.logger.Error("queue welcome email failed", zap.String("recipient", email), zap.Error(err))
	}
}

// Feedback forwards a user message to the team inbox.
func (s *Service) Feedback(ctx context.Context, inbox, fromEmail, message string) {
	msg := RenderFeedback(fromEmail, message)
	if err := s.outbox.Queue(ctx, nil, models.EmailTypeFeedback, inbox, msg); err != nil {
		s.logger.Error("queue feedback email failed", zap.Error(err))
	}
}

func (s *Service) queue(ctx context.Context, ev *models.Event, emailType, recipient string, msg Email) {
	id := ev.ID
	if err := s.outbox.Queue(ctx, &id, emailType, recipient, msg); err != nil {
		s.logger.Error("queue email failed",
			zap.String("email_type", emailType),
			zap.String("event_id", id.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) record(ctx context.Context, n *models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("write notification failed", zap.String("type", n.Type), zap.Error(err))
	}
}
