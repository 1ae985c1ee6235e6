package events

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/middleware"
	"github.com/padelhub/backend/internal/models"
	"github.com/padelhub/backend/pkg/response"
)

// Notifier receives the trigger calls after a mutation commits. Send
// failures inside the notifier never abort the request.
type Notifier interface {
	EventCreated(ctx context.Context, ev *models.Event)
	RosterChanged(ctx context.Context, ev *models.Event, before, after []*models.Player)
}

// UserGetter resolves the authenticated user for roster entries.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Date            string  `json:"date" binding:"required"`
	StartTime       string  `json:"start_time" binding:"required"`
	EndTime         string  `json:"end_time"`
	LocationName    string  `json:"location_name" binding:"required"`
	LocationAddress string  `json:"location_address"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	SkillLevel      string  `json:"skill_level"`
	Price           float64 `json:"price"`
	MaxPlayers      int     `json:"max_players" binding:"required,min=2,max=8"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo     *Repository
	users    UserGetter
	notifier Notifier
	logger   *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, users UserGetter, notifier Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, users: users, notifier: notifier, logger: logger}
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !ValidDate(req.Date) {
		response.BadRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	if !ValidTime(req.StartTime) {
		response.BadRequest(c, "invalid start_time, expected HH:MM")
		return
	}
	if req.EndTime != "" && !ValidTime(req.EndTime) {
		response.BadRequest(c, "invalid end_time, expected HH:MM")
		return
	}
	if req.Price < 0 {
		response.BadRequest(c, "price must be >= 0")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	ev := &models.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SkillLevel:      req.SkillLevel,
		Price:           req.Price,
		MaxPlayers:      req.MaxPlayers,
		Players:         []*models.Player{},
		Status:          models.EventStatusActive,
		CreatedBy:       userID.String(),
	}
	if err := h.repo.Create(c.Request.Context(), ev); err != nil {
		h.logger.Error("create event failed", zap.Error(err))
		response.Internal(c, "failed to create event")
		return
	}

	if h.notifier != nil {
		h.notifier.EventCreated(c.Request.Context(), ev)
	}
	response.Created(c, ev)
}

// List handles GET /events. Query ?status=active|completed|cancelled filters.
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.EventStatusActive, models.EventStatusCompleted, models.EventStatusCancelled:
	default:
		response.BadRequest(c, "invalid status filter")
		return
	}
	list, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	ev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, ev)
}

// Update handles PATCH /events/:id (creator only). Title, description and
// status transitions are the only mutable fields; the roster has its own
// endpoints.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	ev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if ev.CreatedBy != userID.String() {
		response.Forbidden(c, "only the creator can update this event")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.EventStatusActive, models.EventStatusCompleted, models.EventStatusCancelled:
		default:
			response.BadRequest(c, "invalid status")
			return
		}
	}
	if err := h.repo.Update(c.Request.Context(), id, req.Title, req.Description, req.Status); err != nil {
		response.Internal(c, "failed to update event")
		return
	}
	updated, _ := h.repo.GetByID(c.Request.Context(), id)
	response.OK(c, updated)
}

// Delete handles DELETE /events/:id (creator only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	ev, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if ev.CreatedBy != userID.String() {
		response.Forbidden(c, "only the creator can delete this event")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Internal(c, "failed to delete event")
		return
	}
	response.NoContent(c)
}

// Join handles POST /events/:id/join.
func (h *Handler) Join(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}

	player := models.Player{ID: userID.String(), Name: user.FullName, Email: user.Email}
	before, ev, err := h.repo.Join(c.Request.Context(), id, player)
	if err != nil {
		h.rosterError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.RosterChanged(c.Request.Context(), ev, before, ev.Players)
	}
	response.OK(c, ev)
}

// Leave handles POST /events/:id/leave.
func (h *Handler) Leave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	before, ev, err := h.repo.Leave(c.Request.Context(), id, userID.String())
	if err != nil {
		h.rosterError(c, err)
		return
	}

	if h.notifier != nil {
		h.notifier.RosterChanged(c.Request.Context(), ev, before, ev.Players)
	}
	response.OK(c, ev)
}

func (h *Handler) rosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotActive):
		response.Conflict(c, "event is not active")
	case errors.Is(err, ErrRosterFull):
		response.Conflict(c, "event is full")
	case errors.Is(err, ErrAlreadyJoined):
		response.Conflict(c, "already joined")
	case errors.Is(err, ErrNotInRoster):
		response.BadRequest(c, "not in the roster")
	default:
		h.logger.Error("roster update failed", zap.Error(err))
		response.Internal(c, "failed to update roster")
	}
}
