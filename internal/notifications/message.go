package notifications

import "context"

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}
