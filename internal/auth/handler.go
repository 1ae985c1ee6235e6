package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/models"
	"github.com/padelhub/backend/pkg/response"
	"github.com/padelhub/backend/pkg/utils"
)

// contextUserID mirrors middleware.ContextUserID; redeclared here because the
// JWT middleware imports this package.
const contextUserID = "user_id"

// WelcomeMailer queues the welcome email after registration. Implemented by
// the notify service; nil disables the send.
type WelcomeMailer interface {
	Welcome(ctx context.Context, email, name string)
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo    *Repository
	jwt     *JWTService
	welcome WelcomeMailer
	logger  *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, welcome WelcomeMailer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, welcome: welcome, logger: logger}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.FullName, models.RolePlayer)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	if req.Phone != "" {
		_ = h.repo.UpdateProfile(c.Request.Context(), user.ID, req.Phone, "", "", "")
		user.Phone = req.Phone
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	if h.welcome != nil {
		h.welcome.Welcome(c.Request.Context(), user.Email, user.FullName)
	}

	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, response.Body{Success: true, Data: TokenResponse{Token: token, User: user.ToPublic()}})
}

// ProfileComplete handles GET /profile/complete. Reports whether the profile
// has every field the matchmaking screens need, and which are missing.
func (h *Handler) ProfileComplete(c *gin.Context) {
	userID := c.MustGet(contextUserID).(uuid.UUID)
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	missing := user.ProfileMissing()
	response.OK(c, gin.H{"complete": len(missing) == 0, "missing": missing})
}

// UpdateProfile handles PATCH /profile. Only the completeness fields are
// writable here.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(contextUserID).(uuid.UUID)
	var req struct {
		Phone           string `json:"phone"`
		SkillLevel      string `json:"skill_level"`
		PreferredSports string `json:"preferred_sports"`
		Location        string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	if err := h.repo.UpdateProfile(c.Request.Context(), userID, req.Phone, req.SkillLevel, req.PreferredSports, req.Location); err != nil {
		response.Internal(c, "failed to update profile")
		return
	}
	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to load profile")
		return
	}
	response.OK(c, user.ToPublic())
}
