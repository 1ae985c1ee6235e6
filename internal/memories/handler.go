package memories

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelhub/backend/internal/middleware"
	"github.com/padelhub/backend/internal/models"
	"github.com/padelhub/backend/pkg/response"
	"github.com/padelhub/backend/pkg/storage"
)

// EventGetter resolves the event a photo belongs to.
type EventGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// Handler handles shared-photo HTTP endpoints. Only roster members (and the
// creator) of an event may upload or browse its photos.
type Handler struct {
	events EventGetter
	s3     *storage.S3
	logger *zap.Logger
}

// NewHandler creates a memories handler.
func NewHandler(events EventGetter, s3 *storage.S3, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{events: events, s3: s3, logger: logger}
}

func (h *Handler) authorize(c *gin.Context) (*models.Event, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return nil, false
	}
	ev, err := h.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return nil, false
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID).String()
	if ev.CreatedBy != userID && ev.FindPlayer(userID) == nil {
		response.Forbidden(c, "only event players can access its photos")
		return nil, false
	}
	return ev, true
}

// CreateUploadURL handles POST /events/:id/memories/upload-url. Returns a
// pre-signed PUT URL for direct-to-bucket upload.
func (h *Handler) CreateUploadURL(c *gin.Context) {
	ev, ok := h.authorize(c)
	if !ok {
		return
	}
	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !storage.ValidatePhotoFileType(req.ContentType, req.Filename) {
		response.BadRequest(c, "unsupported photo type")
		return
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(req.Filename)
	}

	key := storage.MemoryKey(ev.ID.String(), uniqueName(req.Filename))
	url, err := h.s3.GeneratePresignedUploadURL(c.Request.Context(),
		h.s3.MemoriesBucket(), key, contentType, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("presign upload failed", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to create upload URL")
		return
	}
	response.OK(c, gin.H{
		"upload_url":   url,
		"key":          key,
		"content_type": contentType,
		"expires_in":   int(h.s3.PresignExpire().Seconds()),
	})
}

// Upload handles POST /events/:id/memories, a server-side multipart upload
// for clients that cannot PUT to the bucket directly.
func (h *Handler) Upload(c *gin.Context) {
	ev, ok := h.authorize(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file required")
		return
	}
	defer file.Close()

	if header.Size > storage.MaxMemoryFileSize {
		response.BadRequest(c, "photo exceeds the 10MB limit")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !storage.ValidatePhotoFileType(contentType, header.Filename) {
		response.BadRequest(c, "unsupported photo type")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(header.Filename)
	}

	key := storage.MemoryKey(ev.ID.String(), uniqueName(header.Filename))
	url, err := h.s3.Upload(c.Request.Context(), h.s3.MemoriesBucket(), key, contentType, file)
	if err != nil {
		h.logger.Error("photo upload failed", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to upload photo")
		return
	}
	response.Created(c, gin.H{"key": key, "url": url})
}

// List handles GET /events/:id/memories. Returns presigned GET URLs for
// every photo shared for the event.
func (h *Handler) List(c *gin.Context) {
	ev, ok := h.authorize(c)
	if !ok {
		return
	}
	keys, err := h.s3.ListKeys(c.Request.Context(), h.s3.MemoriesBucket(), storage.MemoryPrefix(ev.ID.String()))
	if err != nil {
		h.logger.Error("list photos failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		response.Internal(c, "failed to list photos")
		return
	}

	type photo struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	photos := make([]photo, 0, len(keys))
	for _, key := range keys {
		url, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), h.s3.MemoriesBucket(), key, h.s3.PresignExpire())
		if err != nil {
			h.logger.Warn("presign download failed", zap.String("key", key), zap.Error(err))
			continue
		}
		photos = append(photos, photo{Key: key, URL: url})
	}
	response.OK(c, photos)
}

// uniqueName prefixes the filename with a short random id so two players
// uploading "photo.jpg" never collide.
func uniqueName(filename string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), uuid.New().String()[:8], path.Base(filename))
}
