package payments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEventStore struct {
	markedEvent  uuid.UUID
	markedPlayer string
	calls        int
	found        bool
	err          error
}

func (f *fakeEventStore) MarkPlayerPaid(_ context.Context, eventID uuid.UUID, playerID string) (bool, error) {
	f.calls++
	f.markedEvent = eventID
	f.markedPlayer = playerID
	return f.found, f.err
}

type fakePaymentStore struct {
	completed []string
}

func (f *fakePaymentStore) MarkCompleted(_ context.Context, sessionID string) error {
	f.completed = append(f.completed, sessionID)
	return nil
}

const testSecret = "whsec_test"

var testNow = time.Unix(1700000000, 0)

func webhookRouter(store *fakeEventStore, payments *fakePaymentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(testSecret, store, payments, func() time.Time { return testNow }, nil)
	r := gin.New()
	r.POST("/webhooks/payment", h.Handle)
	return r
}

func sessionCompletedBody(eventID uuid.UUID, userID, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_123",
			"payment_status": %q,
			"metadata": {"event_id": %q, "user_id": %q}
		}}
	}`, paymentStatus, eventID, userID))
}

func post(r *gin.Engine, body []byte, sign bool) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	if sign {
		req.Header.Set("Webhook-Signature", Sign(body, testSecret, testNow))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_AppliesPaymentToMatchingPlayer(t *testing.T) {
	eventID := uuid.New()
	store := &fakeEventStore{found: true}
	payments := &fakePaymentStore{}
	r := webhookRouter(store, payments)

	w := post(r, sessionCompletedBody(eventID, "user-1", "paid"), true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, eventID, store.markedEvent)
	assert.Equal(t, "user-1", store.markedPlayer)
	assert.Equal(t, []string{"cs_test_123"}, payments.completed)
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	store := &fakeEventStore{found: true}
	r := webhookRouter(store, &fakePaymentStore{})

	w := post(r, sessionCompletedBody(uuid.New(), "user-1", "paid"), false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.calls, "store must not be touched on a bad signature")
}

func TestWebhook_IgnoresUnpaidSession(t *testing.T) {
	store := &fakeEventStore{found: true}
	r := webhookRouter(store, &fakePaymentStore{})

	w := post(r, sessionCompletedBody(uuid.New(), "user-1", "unpaid"), true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, store.calls)
}

func TestWebhook_MissingPlayerAcknowledged(t *testing.T) {
	store := &fakeEventStore{found: false}
	r := webhookRouter(store, &fakePaymentStore{})

	w := post(r, sessionCompletedBody(uuid.New(), "ghost", "paid"), true)

	// 200 so the provider stops retrying; the mismatch is logged
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "player not in roster")
}

func TestWebhook_StoreFailureReturns500(t *testing.T) {
	store := &fakeEventStore{err: errors.New("db down")}
	r := webhookRouter(store, &fakePaymentStore{})

	w := post(r, sessionCompletedBody(uuid.New(), "user-1", "paid"), true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
