package payments

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/pkg/response"
)

// EventStore is the roster patch the webhook applies.
type EventStore interface {
	MarkPlayerPaid(ctx context.Context, eventID uuid.UUID, playerID string) (found bool, err error)
}

// PaymentStore records session completion.
type PaymentStore interface {
	MarkCompleted(ctx context.Context, sessionID string) error
}

// webhookEvent is the subset of the provider's event envelope we read.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			PaymentStatus     string `json:"payment_status"`
			ClientReferenceID string `json:"client_reference_id"`
			Metadata          struct {
				EventID string `json:"event_id"`
				UserID  string `json:"user_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookHandler verifies and applies payment provider callbacks.
type WebhookHandler struct {
	secret   string
	events   EventStore
	payments PaymentStore
	now      func() time.Time
	logger   *zap.Logger
}

// NewWebhookHandler creates the payment webhook handler. now defaults to
// time.Now.
func NewWebhookHandler(secret string, events EventStore, payments PaymentStore, now func() time.Time, logger *zap.Logger) *WebhookHandler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{secret: secret, events: events, payments: payments, now: now, logger: logger}
}

// Handle handles POST /webhooks/payment. The signature is verified over the
// raw body before any parsing. Unknown event types and sessions that are not
// paid yet are acknowledged without effect. A missing roster entry is logged
// and acknowledged so the provider stops retrying; a store failure returns
// 500 so it retries.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "unreadable body")
		return
	}

	sig := c.GetHeader("Webhook-Signature")
	if sig == "" {
		sig = c.GetHeader("Stripe-Signature")
	}
	if err := VerifySignature(sig, body, h.secret, h.now()); err != nil {
		h.logger.Warn("webhook signature rejected", zap.Error(err))
		response.BadRequest(c, "invalid signature")
		return
	}

	var evt webhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	if evt.Type != "checkout.session.completed" || evt.Data.Object.PaymentStatus != "paid" {
		response.OK(c, gin.H{"received": true})
		return
	}

	session := evt.Data.Object
	eventID, err := uuid.Parse(session.Metadata.EventID)
	if err != nil {
		h.logger.Warn("webhook missing event id", zap.String("session_id", session.ID))
		response.OK(c, gin.H{"received": true})
		return
	}
	playerID := session.Metadata.UserID
	if playerID == "" {
		playerID = session.ClientReferenceID
	}

	found, err := h.events.MarkPlayerPaid(c.Request.Context(), eventID, playerID)
	if err != nil {
		h.logger.Error("mark player paid failed",
			zap.String("event_id", eventID.String()),
			zap.String("player_id", playerID),
			zap.Error(err),
		)
		response.Internal(c, "failed to apply payment")
		return
	}
	if !found {
		h.logger.Warn("paid player not in roster",
			zap.String("event_id", eventID.String()),
			zap.String("player_id", playerID),
		)
		response.OK(c, gin.H{"received": true, "warning": "player not in roster"})
		return
	}

	if h.payments != nil {
		if err := h.payments.MarkCompleted(c.Request.Context(), session.ID); err != nil {
			h.logger.Error("mark payment completed failed", zap.String("session_id", session.ID), zap.Error(err))
		}
	}

	h.logger.Info("payment applied",
		zap.String("event_id", eventID.String()),
		zap.String("player_id", playerID),
		zap.String("session_id", session.ID),
	)
	response.OK(c, gin.H{"received": true})
}
