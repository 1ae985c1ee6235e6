package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeProvider_CreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "eur", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "1250", r.PostForm.Get("line_items[0][price_data][unit_amount]"), "12.50 in cents")
		assert.Equal(t, "Friday Doubles", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "evt-1", r.PostForm.Get("metadata[event_id]"))
		assert.Equal(t, "user-1", r.PostForm.Get("metadata[user_id]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_42","url":"https://checkout.example.com/cs_test_42"}`))
	}))
	defer srv.Close()

	p := NewStripeProvider("sk_test", srv.URL, nil)
	session, err := p.CreateCheckoutSession(context.Background(), CheckoutParams{
		EventID:     "evt-1",
		UserID:      "user-1",
		Title:       "Friday Doubles",
		Amount:      12.50,
		Currency:    "EUR",
		SuccessURL:  "https://app.example.com/ok",
		CancelURL:   "https://app.example.com/no",
		ReferenceID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", session.ID)
	assert.Equal(t, "https://checkout.example.com/cs_test_42", session.URL)
}

func TestStripeProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid API key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewStripeProvider("sk_bad", srv.URL, nil)
	_, err := p.CreateCheckoutSession(context.Background(), CheckoutParams{Amount: 10, Currency: "eur"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
