package email

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/emersion/go-smtp"
)

var (
	ErrInvalidMessage    = errors.New("invalid email message")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrDeliveryFailed    = errors.New("email delivery failed")
	ErrAuthUnsupported   = errors.New("server does not support authentication")
	ErrUnknownTransport  = errors.New("unknown mail transport")
	ErrPostmarkRejection = errors.New("postmark rejected the message")
)

// Kind is a coarse classification of delivery failures.
type Kind string

const (
	AuthFailure       Kind = "auth_failure"
	ConnectionFailure Kind = "connection_failure"
	Timeout           Kind = "timeout"
	HostNotFound      Kind = "host_not_found"
	Unknown           Kind = "unknown"
)

func (k Kind) String() string { return string(k) }

// DeliveryError reports a failed Send or Verify. It matches
// ErrDeliveryFailed and the underlying error with errors.Is.
type DeliveryError struct {
	Kind Kind
	Err  error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%s)", ErrDeliveryFailed, e.Kind)
	}
	return fmt.Sprintf("%s (%s): %v", ErrDeliveryFailed, e.Kind, e.Err)
}

func (e *DeliveryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDeliveryFailed}
	}
	return []error{ErrDeliveryFailed, e.Err}
}

// Classify wraps err in a *DeliveryError. An existing *DeliveryError in the
// chain is returned as is.
func Classify(err error) *DeliveryError {
	if err == nil {
		return nil
	}
	var de *DeliveryError
	if errors.As(err, &de) {
		return de
	}
	return &DeliveryError{Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return Timeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return Timeout
		}
		return HostNotFound
	}

	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		switch smtpErr.Code {
		case 454, 530, 534, 535, 538:
			return AuthFailure
		case 421:
			return ConnectionFailure
		default:
			return Unknown
		}
	}

	if errors.Is(err, ErrAuthUnsupported) {
		return AuthFailure
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}

	var (
		opErr       *net.OpError
		recordErr   tls.RecordHeaderError
		unknownCA   x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		certErr     x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &opErr),
		errors.As(err, &recordErr),
		errors.As(err, &unknownCA),
		errors.As(err, &hostnameErr),
		errors.As(err, &certErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return ConnectionFailure
	}

	return Unknown
}
