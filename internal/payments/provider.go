package payments

import "context"

// CheckoutParams describes a checkout session to create.
type CheckoutParams struct {
	EventID     string
	UserID      string
	Title       string
	Amount      float64 // major units, e.g. euros
	Currency    string
	SuccessURL  string
	CancelURL   string
	ReferenceID string // client_reference_id echoed back by the webhook
}

// Session is a created checkout session.
type Session struct {
	ID  string
	URL string
}

// Provider creates checkout sessions with an external payment service.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
}
