package email

import "context"

// Sender is a mail transport capability.
type Sender interface {
	// Send delivers msg once and returns the provider-assigned message id.
	Send(ctx context.Context, msg Message) (string, error)
	// Verify checks that the transport can connect and authenticate
	// without sending anything.
	Verify(ctx context.Context) error
}
