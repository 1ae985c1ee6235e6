package feedback

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/padelhub/backend/internal/middleware"
	"github.com/padelhub/backend/pkg/response"
)

// Sender forwards feedback to the team inbox. Implemented by the notify
// service.
type Sender interface {
	Feedback(ctx context.Context, inbox, fromEmail, message string)
}

// Handler handles POST /feedback.
type Handler struct {
	sender Sender
	inbox  string
}

// NewHandler creates a feedback handler. inbox is the team address feedback
// is forwarded to.
func NewHandler(sender Sender, inbox string) *Handler {
	return &Handler{sender: sender, inbox: inbox}
}

// Submit handles POST /feedback.
func (h *Handler) Submit(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required,max=4000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	email, _ := c.MustGet(middleware.ContextUserEmail).(string)
	h.sender.Feedback(c.Request.Context(), h.inbox, email, req.Message)
	response.OK(c, gin.H{"received": true})
}
