package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResend_Send(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewResend("re_test", "PadelHub", "noreply@padelhub.example.com", nil)
	s.SetBaseURL(srv.URL)

	err := s.Send(context.Background(), Message{To: "ana@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	assert.Equal(t, "PadelHub <noreply@padelhub.example.com>", got.From)
	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "Hi", got.Subject)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestResend_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewResend("re_test", "PadelHub", "noreply@padelhub.example.com", nil)
	s.SetBaseURL(srv.URL)

	err := s.Send(context.Background(), Message{To: "ana@example.com", Subject: "Hi", HTML: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
