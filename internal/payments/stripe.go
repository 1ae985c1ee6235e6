package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeProvider creates checkout sessions via Stripe's REST API.
type StripeProvider struct {
	secretKey string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

// NewStripeProvider creates a Stripe-backed payment provider. baseURL is
// overridable for tests; empty means the live API.
func NewStripeProvider(secretKey, baseURL string, logger *zap.Logger) *StripeProvider {
	if baseURL == "" {
		baseURL = defaultStripeBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeProvider{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// CreateCheckoutSession POSTs a form-encoded session create. Amount is
// converted to the currency's minor unit.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error) {
	cents := int64(math.Round(params.Amount * 100))

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("client_reference_id", params.ReferenceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(cents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Title)
	form.Set("metadata[event_id]", params.EventID)
	form.Set("metadata[user_id]", params.UserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		p.logger.Error("stripe session create failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("stripe responded %d", resp.StatusCode)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	return &Session{ID: out.ID, URL: out.URL}, nil
}
