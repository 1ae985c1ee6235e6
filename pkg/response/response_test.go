package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// record runs the handler through a real engine so status-only responses
// (c.Status) are flushed to the recorder.
func record(fn gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", fn)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestOK(t *testing.T) {
	w := record(func(c *gin.Context) { OK(c, gin.H{"hello": "world"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"hello":"world"}}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) { BadRequest(c, "nope") })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"nope"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := record(NoContent)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStatuses(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, record(func(c *gin.Context) { Unauthorized(c, "x") }).Code)
	assert.Equal(t, http.StatusForbidden, record(func(c *gin.Context) { Forbidden(c, "x") }).Code)
	assert.Equal(t, http.StatusNotFound, record(func(c *gin.Context) { NotFound(c, "x") }).Code)
	assert.Equal(t, http.StatusConflict, record(func(c *gin.Context) { Conflict(c, "x") }).Code)
	assert.Equal(t, http.StatusInternalServerError, record(func(c *gin.Context) { Internal(c, "x") }).Code)
}
