package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ClientIP records the client identifier used for rate limiting.
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

// Kind records the submission kind (contact, collaboration, waitlist).
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// MessageID records the provider-assigned message identifier.
func MessageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("message_id", id)
}

// DeliveryKind records the coarse delivery failure class.
func DeliveryKind(kind string) slog.Attr {
	return slog.String("delivery_error", kind)
}

// Transport records which mail transport handled a message.
func Transport(name string) slog.Attr {
	return slog.String("transport", name)
}

// Duration records elapsed time in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
