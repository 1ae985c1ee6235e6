package locations

import (
	"github.com/gin-gonic/gin"

	"github.com/padelhub/backend/pkg/response"
)

// Handler serves the court catalog.
type Handler struct {
	repo *Repository
}

// NewHandler creates a locations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /locations.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list locations")
		return
	}
	response.OK(c, list)
}
