package payments

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/middleware"
	"github.com/padelhub/backend/internal/models"
	"github.com/padelhub/backend/pkg/response"
)

// EventGetter resolves the event a checkout is for.
type EventGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// Handler handles checkout session creation.
type Handler struct {
	provider   Provider
	events     EventGetter
	repo       *Repository
	appBaseURL string
	logger     *zap.Logger
}

// NewHandler creates a payments handler.
func NewHandler(provider Provider, events EventGetter, repo *Repository, appBaseURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{provider: provider, events: events, repo: repo, appBaseURL: appBaseURL, logger: logger}
}

// CreateCheckoutSession handles POST /payments/checkout-session. The caller
// pays for their own slot; amount and title come from the event, never the
// request body.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req struct {
		EventID string `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	ev, err := h.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if ev.Price <= 0 {
		response.BadRequest(c, "event is free, nothing to pay")
		return
	}
	if ev.FindPlayer(userID.String()) == nil {
		response.BadRequest(c, "join the event before paying")
		return
	}

	title := ev.Title
	if title == "" {
		title = "Padel event"
	}
	session, err := h.provider.CreateCheckoutSession(c.Request.Context(), CheckoutParams{
		EventID:     ev.ID.String(),
		UserID:      userID.String(),
		Title:       title,
		Amount:      ev.Price,
		Currency:    "eur",
		SuccessURL:  h.appBaseURL + "/payments/success",
		CancelURL:   h.appBaseURL + "/payments/cancel",
		ReferenceID: userID.String(),
	})
	if err != nil {
		h.logger.Error("create checkout session failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		response.Internal(c, "failed to create checkout session")
		return
	}

	payment := &models.Payment{
		EventID:           ev.ID,
		UserID:            userID.String(),
		Provider:          "stripe",
		ProviderSessionID: session.ID,
		Amount:            ev.Price,
		Currency:          "eur",
	}
	if err := h.repo.Create(c.Request.Context(), payment); err != nil {
		h.logger.Error("record payment failed", zap.String("session_id", session.ID), zap.Error(err))
	}

	response.Created(c, gin.H{"session_id": session.ID, "url": session.URL})
}
