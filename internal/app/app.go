package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/dmitrymomot/formrelay/internal/api"
	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/environment"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/redis"
	"github.com/dmitrymomot/formrelay/pkg/requestid"
)

// App holds the wired service.
type App struct {
	Env      environment.Environment
	Logger   *slog.Logger
	Renderer *notification.Renderer
	Relay    *relay.Service
	Handler  http.Handler
	Checks   []httpserver.Check

	closers []func() error
}

type options struct {
	logger        *slog.Logger
	sender        email.Sender
	transportName string
	now           func() time.Time
}

// Option customizes New.
type Option func(*options)

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSender replaces the transport selected by MAIL_TRANSPORT.
func WithSender(s email.Sender, name string) Option {
	return func(o *options) {
		o.sender = s
		o.transportName = name
	}
}

// WithClock sets the time source for the limiter and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewLogger builds the service logger writing to w.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(cfg.LogOutputFormat()),
		logger.WithOutput(w),
		logger.WithService("formrelay"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
}

// New wires the limiter store, mail transport, renderer, relay pipeline
// and router. Close releases whatever New opened.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg, os.Stdout)
	}

	a := &App{Env: cfg.Environment(), Logger: o.logger}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, a.fail(err)
	}
	limiter, err := ratelimit.NewSlidingWindow(store, cfg.RateLimit.Max, cfg.RateLimit.Window, ratelimit.WithClock(o.now))
	if err != nil {
		return nil, a.fail(err)
	}

	sender, transport := o.sender, o.transportName
	if sender == nil {
		if sender, err = email.NewSender(cfg.Mail); err != nil {
			return nil, a.fail(err)
		}
		transport = cfg.TransportName()
	}
	dispatcher := email.NewDispatcher(sender,
		email.WithSendTimeout(cfg.Mail.SendTimeout),
		email.WithTransportName(transport),
		email.WithLogger(o.logger),
	)

	if a.Renderer, err = notification.NewRenderer(cfg.Notification); err != nil {
		return nil, a.fail(err)
	}

	a.Relay = relay.New(limiter, a.Renderer, dispatcher,
		relay.WithClock(o.now),
		relay.WithLogger(o.logger),
	)
	a.Handler = api.NewRouter(api.Options{
		Relay:    a.Relay,
		Config:   cfg.API,
		Env:      a.Env,
		Logger:   o.logger,
		ClientIP: clientip.NewFromConfig(cfg.ClientIP),
		Checks:   a.Checks,
		Now:      o.now,
	})

	o.logger.Info("service configured",
		logger.Transport(transport),
		slog.String("rate_limit_store", cfg.storeName()),
		slog.Int("rate_limit_max", cfg.RateLimit.Max),
		slog.Duration("rate_limit_window", cfg.RateLimit.Window),
		slog.Any("trusted_proxy_headers", cfg.ClientIP.TrustedHeaders),
		slog.String("env", a.Env.String()),
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg Config) (ratelimit.Store, error) {
	if cfg.storeName() != StoreRedis {
		store := ratelimit.NewMemoryStore()
		a.closers = append(a.closers, store.Close)
		return store, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	a.Checks = append(a.Checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	return ratelimit.NewRedisStore(client), nil
}

func (a *App) fail(err error) error {
	return errors.Join(err, a.Close())
}

// Close releases the limiter store and any connections, newest first.
func (a *App) Close() error {
	var errs []error
	for _, c := range slices.Backward(a.closers) {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
