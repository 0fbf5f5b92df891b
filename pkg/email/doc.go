// Package email delivers rendered notification messages.
//
// Every transport implements Sender:
//
//	Send(ctx, Message) (messageID string, err error)
//	Verify(ctx) error
//
// Available transports:
//
//   - SMTPSender talks to a relay with github.com/emersion/go-smtp, using
//     implicit TLS or STARTTLS and SASL PLAIN auth
//   - PostmarkSender uses the Postmark HTTP API
//   - DevSender writes .html, .txt and .json files to a directory
//   - MemorySender records messages for tests
//
// Dispatcher wraps a Sender with a per-call timeout and logging. Failures
// leaving a Dispatcher are always *DeliveryError with a coarse Kind
// (AuthFailure, ConnectionFailure, Timeout, HostNotFound, Unknown) so
// callers can react without parsing transport errors:
//
//	d := email.NewDispatcher(sender, email.WithSendTimeout(30*time.Second))
//	id, err := d.Send(ctx, msg)
//	var de *email.DeliveryError
//	if errors.As(err, &de) && de.Kind == email.AuthFailure {
//		// relay credentials are wrong
//	}
//
// Sends are attempted once. Retrying is left to the caller.
package email
