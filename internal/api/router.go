package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/formrelay/handler"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/binder"
	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/environment"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/requestid"
)

// Relay is the pipeline the routes drive. *relay.Service implements it.
type Relay interface {
	Submit(ctx context.Context, kind submission.Kind, clientKey string, in submission.Input) (relay.Result, error)
	Verify(ctx context.Context) error
}

// Options configures NewRouter. Relay is required.
type Options struct {
	Relay  Relay
	Config Config
	Env    environment.Environment
	Logger *slog.Logger
	// ClientIP resolves the rate-limit key. Defaults to clientip.New(),
	// which keys on the socket address.
	ClientIP *clientip.Resolver
	// Checks back the readiness probe.
	Checks []httpserver.Check
	// Now is the clock for status timestamps.
	Now func() time.Time
}

type api struct {
	relay Relay
	now   func() time.Time
}

// NewRouter builds the HTTP handler for the service.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.ClientIP == nil {
		opts.ClientIP = clientip.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Config.CORSOrigins) == 0 {
		opts.Config.CORSOrigins = []string{"*"}
	}

	a := &api{relay: opts.Relay, now: opts.Now}
	eh := handler.NewErrorHandler(opts.Logger, handler.ErrorHandlerConfig{
		Debug:             opts.Env.IsDevelopment(),
		InternalMessage:   msgInternal,
		RateLimitMessage:  msgRateLimited,
		BadRequestMessage: msgInvalidBody,
	})

	r := chi.NewRouter()
	r.Use(
		middleware.CleanPath,
		requestid.Middleware,
		opts.ClientIP.Middleware,
		environment.Middleware(opts.Env),
		requestLogger(opts.Logger),
		recoverer(eh),
		cors.Handler(cors.Options{
			AllowedOrigins: opts.Config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
			ExposedHeaders: []string{
				requestid.Header,
				"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
			},
			MaxAge: 300,
		}),
	)
	r.NotFound(handler.ErrorHTTPHandler(eh, handler.ErrNotFound).ServeHTTP)
	r.MethodNotAllowed(handler.ErrorHTTPHandler(eh, handler.ErrMethodNotAllowed).ServeHTTP)

	r.Get("/", a.wrapEmpty(eh, a.banner))
	r.Get("/healthz", httpserver.HealthCheckHandler(opts.Logger, opts.Checks...))

	r.Route("/api", func(r chi.Router) {
		r.Route("/mail", func(r chi.Router) {
			r.Post("/contact", a.wrapSubmit(eh, submission.Contact))
			r.Post("/collaboration", a.wrapSubmit(eh, submission.Collaboration))
			r.Post("/send-mail", a.wrapSubmit(eh, ""))
			r.Get("/test", a.wrapEmpty(eh, a.verify))
			r.Get("/health", a.wrapEmpty(eh, a.health))
		})
		r.Post("/waitlist", a.wrapSubmit(eh, submission.Waitlist))
		r.Post("/contact", a.wrapSubmit(eh, submission.Contact, withMissingFieldsMessage(submission.MsgContactMissingFields)))
	})

	return r
}

func (a *api) wrapSubmit(eh handler.ErrorHandler[handler.Context], kind submission.Kind, opts ...submitOption) http.HandlerFunc {
	return handler.Wrap(a.submit(kind, opts...),
		handler.WithBinders[handler.Context, submission.Input](binder.Body()),
		handler.WithErrorHandler[handler.Context, submission.Input](eh),
	)
}

func (a *api) wrapEmpty(eh handler.ErrorHandler[handler.Context], h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
	return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](eh))
}
