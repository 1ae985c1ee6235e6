package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultResendURL = "https://api.resend.com/emails"

// Resend sends email through the Resend HTTP API.
type Resend struct {
	apiKey  string
	from    string // "Name <address>"
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewResend creates a Resend-backed sender. from is the display name,
// address the verified sender address.
func NewResend(apiKey, from, address string, logger *zap.Logger) *Resend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resend{
		apiKey:  apiKey,
		from:    fmt.Sprintf("%s <%s>", from, address),
		baseURL: defaultResendURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// SetBaseURL overrides the API endpoint (tests).
func (r *Resend) SetBaseURL(u string) { r.baseURL = u }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts the message to the provider. The caller decides retry policy;
// on provider error the body is logged and an error returned.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Error("email provider rejected send",
			zap.Int("status", resp.StatusCode),
			zap.String("recipient", msg.To),
			zap.ByteString("body", errBody),
		)
		return fmt.Errorf("email provider status %d", resp.StatusCode)
	}
	return nil
}
