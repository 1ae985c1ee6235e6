package tgbot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/events"
	"github.com/padelhub/backend/internal/models"
)

// Callback prefixes for event roster actions.
const (
	callbackJoinPrefix  = "join:"
	callbackLeavePrefix = "leave:"
)

// botAPI is the slice of the Telegram client the handlers use.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// eventStore is the slice of the events repository the bot drives.
type eventStore interface {
	List(ctx context.Context, status string) ([]*models.Event, error)
	Create(ctx context.Context, ev *models.Event) error
	Join(ctx context.Context, id uuid.UUID, player models.Player) ([]*models.Player, *models.Event, error)
	Leave(ctx context.Context, id uuid.UUID, playerID string) ([]*models.Player, *models.Event, error)
}

type verifiedStore interface {
	Verify(ctx context.Context, chatID int64, phone string) error
	IsVerified(ctx context.Context, chatID int64) (bool, error)
}

// App is the Telegram front end. It drives the same event store as the HTTP
// API; conversation state lives in Redis so restarts don't lose a
// half-filled form.
type App struct {
	bot      *tgbotapi.BotAPI
	api      botAPI
	sessions *SessionStore
	verified verifiedStore
	events   eventStore
	notifier events.Notifier
	logger   *zap.Logger
}

// New creates the bot application.
func New(token string, sessions *SessionStore, verified *VerifiedStore, repo *events.Repository, notifier events.Notifier, logger *zap.Logger) (*App, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	b.Debug = false
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		bot:      b,
		api:      b,
		sessions: sessions,
		verified: verified,
		events:   repo,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Run long-polls updates until ctx is done.
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	a.logger.Info("bot started", zap.String("username", a.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			a.logger.Info("bot stopped")
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(ctx, upd.Message); err != nil {
					a.logger.Error("handle message failed", zap.Int64("chat_id", upd.Message.Chat.ID), zap.Error(err))
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					a.logger.Error("handle callback failed", zap.Int64("chat_id", upd.CallbackQuery.From.ID), zap.Error(err))
				}
			}
		}
	}
}

func (a *App) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.api.Send(msg)
	return err
}

// ---------- Message handling ----------

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID

	if m.Contact != nil {
		return a.handleContact(ctx, m)
	}

	txt := strings.TrimSpace(m.Text)
	switch {
	case strings.HasPrefix(txt, "/start"):
		_ = a.sessions.Delete(ctx, chatID)
		return a.sendText(chatID, "👋 Welcome to PadelHub!\n\n"+
			"/events — upcoming events\n"+
			"/create — create an event\n"+
			"/verify — verify your phone\n"+
			"/help — this message")
	case strings.HasPrefix(txt, "/help"):
		return a.sendText(chatID, "/events — upcoming events\n/create — create an event\n/verify — verify your phone\n/cancel — abandon the current form")
	case strings.HasPrefix(txt, "/cancel"):
		_ = a.sessions.Delete(ctx, chatID)
		return a.sendText(chatID, "Cancelled.")
	case strings.HasPrefix(txt, "/events"):
		return a.showEvents(ctx, chatID)
	case strings.HasPrefix(txt, "/verify"):
		return a.requestContact(chatID)
	case strings.HasPrefix(txt, "/create"):
		return a.startCreateFlow(ctx, chatID)
	}

	sess, err := a.sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if sess != nil && sess.Flow == FlowCreateEvent {
		reply := Advance(sess, txt)
		if err := a.sessions.Save(ctx, sess); err != nil {
			return err
		}
		if sess.Step == StepConfirm {
			return a.sendConfirm(chatID, reply)
		}
		return a.sendText(chatID, reply)
	}

	return a.sendText(chatID, "Not sure what you mean — try /help.")
}

func (a *App) startCreateFlow(ctx context.Context, chatID int64) error {
	ok, err := a.verified.IsVerified(ctx, chatID)
	if err != nil {
		return err
	}
	if !ok {
		return a.sendText(chatID, "Please verify your phone first: /verify")
	}
	sess := &Session{ChatID: chatID, Flow: FlowCreateEvent, Step: StepTitle}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return err
	}
	return a.sendText(chatID, Prompt(StepTitle))
}

func (a *App) requestContact(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Tap the button to share your phone number.")
	btn := tgbotapi.NewKeyboardButtonContact("📱 Share phone number")
	kb := tgbotapi.NewOneTimeReplyKeyboard(tgbotapi.NewKeyboardButtonRow(btn))
	msg.ReplyMarkup = kb
	_, err := a.api.Send(msg)
	return err
}

func (a *App) handleContact(ctx context.Context, m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	// only trust the user's own contact card
	if m.Contact.UserID != m.From.ID {
		return a.sendText(chatID, "Please share your own contact.")
	}
	if err := a.verified.Verify(ctx, chatID, m.Contact.PhoneNumber); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, "✅ Phone verified! You can now create and join events.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := a.api.Send(msg)
	return err
}

func (a *App) showEvents(ctx context.Context, chatID int64) error {
	list, err := a.events.List(ctx, models.EventStatusActive)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return a.sendText(chatID, "No upcoming events. Create one with /create!")
	}

	me := TelegramID(chatID)
	for _, ev := range list {
		text := fmt.Sprintf("🏷 %s\n📅 %s at %s\n📍 %s\n👥 %d/%d players",
			ev.Title, ev.Date, ev.StartTime, ev.LocationName,
			len(ev.ActivePlayers()), ev.MaxPlayers)
		msg := tgbotapi.NewMessage(chatID, text)

		var btn tgbotapi.InlineKeyboardButton
		if ev.FindPlayer(me) != nil {
			btn = tgbotapi.NewInlineKeyboardButtonData("🚪 Leave", callbackLeavePrefix+ev.ID.String())
		} else {
			btn = tgbotapi.NewInlineKeyboardButtonData("🎾 Join", callbackJoinPrefix+ev.ID.String())
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
		if _, err := a.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) sendConfirm(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Create", CallbackCreateConfirm),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", CallbackCreateCancel),
		),
	)
	_, err := a.api.Send(msg)
	return err
}

// ---------- Callback handling ----------

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	chatID := q.From.ID
	data := q.Data

	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.api.Request(cb)

	switch {
	case data == CallbackCreateConfirm:
		return a.confirmCreate(ctx, chatID)
	case data == CallbackCreateCancel:
		_ = a.sessions.Delete(ctx, chatID)
		return a.sendText(chatID, "Cancelled. Nothing was created.")
	case strings.HasPrefix(data, callbackJoinPrefix):
		return a.joinEvent(ctx, chatID, q.From, strings.TrimPrefix(data, callbackJoinPrefix))
	case strings.HasPrefix(data, callbackLeavePrefix):
		return a.leaveEvent(ctx, chatID, strings.TrimPrefix(data, callbackLeavePrefix))
	}
	return nil
}

func (a *App) confirmCreate(ctx context.Context, chatID int64) error {
	sess, err := a.sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if sess == nil || sess.Flow != FlowCreateEvent || sess.Step != StepConfirm {
		return a.sendText(chatID, "Nothing to confirm — start over with /create.")
	}

	d := sess.Draft
	ev := &models.Event{
		Title:        d.Title,
		Description:  d.Description,
		Date:         d.Date,
		StartTime:    d.StartTime,
		LocationName: d.Location,
		Price:        d.Price,
		MaxPlayers:   d.MaxPlayers,
		Players:      []*models.Player{},
		Status:       models.EventStatusActive,
		CreatedBy:    TelegramID(chatID),
	}
	if err := a.events.Create(ctx, ev); err != nil {
		a.logger.Error("bot create event failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return a.sendText(chatID, "Something went wrong creating the event. Try again later.")
	}
	_ = a.sessions.Delete(ctx, chatID)

	if a.notifier != nil {
		a.notifier.EventCreated(ctx, ev)
	}
	return a.sendText(chatID, "🎉 Event created! Players can now join via /events.")
}

func (a *App) joinEvent(ctx context.Context, chatID int64, from *tgbotapi.User, rawID string) error {
	ok, err := a.verified.IsVerified(ctx, chatID)
	if err != nil {
		return err
	}
	if !ok {
		return a.sendText(chatID, "Please verify your phone first: /verify")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}

	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if from.UserName != "" {
		name = "@" + from.UserName
	}
	player := models.Player{ID: TelegramID(chatID), Name: name}
	before, ev, err := a.events.Join(ctx, id, player)
	if err != nil {
		return a.sendText(chatID, rosterErrorText(err))
	}
	if a.notifier != nil {
		a.notifier.RosterChanged(ctx, ev, before, ev.Players)
	}
	return a.sendText(chatID, fmt.Sprintf("✅ You're in! %s on %s at %s.", ev.Title, ev.Date, ev.StartTime))
}

func (a *App) leaveEvent(ctx context.Context, chatID int64, rawID string) error {
	ok, err := a.verified.IsVerified(ctx, chatID)
	if err != nil {
		return err
	}
	if !ok {
		return a.sendText(chatID, "Please verify your phone first: /verify")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	before, ev, err := a.events.Leave(ctx, id, TelegramID(chatID))
	if err != nil {
		return a.sendText(chatID, rosterErrorText(err))
	}
	if a.notifier != nil {
		a.notifier.RosterChanged(ctx, ev, before, ev.Players)
	}
	return a.sendText(chatID, "You've left "+ev.Title+".")
}

func rosterErrorText(err error) string {
	switch err {
	case events.ErrEventNotActive:
		return "That event is no longer active."
	case events.ErrRosterFull:
		return "Sorry, that event is already full."
	case events.ErrAlreadyJoined:
		return "You've already joined this one."
	case events.ErrNotInRoster:
		return "You're not in that event's roster."
	default:
		return "Something went wrong. Try again later."
	}
}
