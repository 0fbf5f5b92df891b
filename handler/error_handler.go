package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formrelay/pkg/binder"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/validator"
)

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Debug adds the error text to responses. Development only.
	Debug bool

	// InternalMessage is shown for unclassified errors.
	InternalMessage string

	// RateLimitMessage is shown with 429 responses.
	RateLimitMessage string

	// BadRequestMessage is shown for bodies that cannot be decoded.
	BadRequestMessage string
}

func (c ErrorHandlerConfig) withDefaults() ErrorHandlerConfig {
	if c.InternalMessage == "" {
		c.InternalMessage = "Something went wrong!"
	}
	if c.RateLimitMessage == "" {
		c.RateLimitMessage = "Too many requests. Please try again later."
	}
	if c.BadRequestMessage == "" {
		c.BadRequestMessage = "Invalid request body."
	}
	return c
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Kind       string
	LogLevel   slog.Level
	RateLimit  *ratelimit.Result
}

// Error kinds written to logs.
const (
	KindValidation = "validation"
	KindRateLimit  = "rate_limited"
	KindBadRequest = "bad_request"
	KindHTTP       = "http"
	KindInternal   = "internal"
)

func classifyError(err error, cfg ErrorHandlerConfig) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    cfg.InternalMessage,
		Kind:       KindInternal,
	}

	var (
		httpErr     *HTTPError
		validErrs   validator.ValidationErrors
		exceededErr *ratelimit.ExceededError
	)
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
		info.Kind = KindHTTP
	case errors.As(err, &validErrs) && len(validErrs) > 0:
		info.StatusCode = http.StatusBadRequest
		info.Message = validErrs.First().Message
		info.Kind = KindValidation
	case errors.Is(err, ratelimit.ErrRateLimitExceeded):
		info.StatusCode = http.StatusTooManyRequests
		info.Message = cfg.RateLimitMessage
		info.Kind = KindRateLimit
	case errors.Is(err, binder.ErrBodyTooLarge):
		info.StatusCode = http.StatusRequestEntityTooLarge
		info.Message = cfg.BadRequestMessage
		info.Kind = KindBadRequest
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Message = cfg.BadRequestMessage
		info.Kind = KindBadRequest
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm):
		info.StatusCode = http.StatusBadRequest
		info.Message = cfg.BadRequestMessage
		info.Kind = KindBadRequest
	}

	if errors.As(err, &exceededErr) {
		res := exceededErr.Result
		info.RateLimit = &res
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func writeError(w http.ResponseWriter, info ErrorInfo, detail string) {
	if info.RateLimit != nil {
		ratelimit.SetHeaders(w.Header(), *info.RateLimit)
	}
	_ = writeJSON(w, info.StatusCode, Envelope{
		Success: false,
		Message: info.Message,
		Error:   detail,
	})
}

// NewErrorHandler returns the ErrorHandler shared by all routes. It logs
// every failure with its kind and writes the JSON envelope.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(err, cfg)

		log.LogAttrs(r.Context(), info.LogLevel, "request failed",
			slog.String("error_kind", info.Kind),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
			logger.Component("error_handler"),
		)

		var detail string
		if cfg.Debug {
			detail = err.Error()
		}
		writeError(ctx.ResponseWriter(), info, detail)
	}
}

// ErrorHTTPHandler adapts an ErrorHandler to a plain http.Handler that
// always reports err. Used for 404 and 405 routes.
func ErrorHTTPHandler(h ErrorHandler[Context], err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(NewContext(w, r), err)
	})
}
