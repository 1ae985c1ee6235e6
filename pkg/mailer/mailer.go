// Package mailer defines the interface for transactional email delivery and
// provides a Resend-backed implementation.
package mailer

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender is the interface the outbox worker uses to send email.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
