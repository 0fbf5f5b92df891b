package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
)

var ErrRender = errors.New("failed to render notification")

// Renderer builds the email for a normalized submission.
type Renderer interface {
	Render(s submission.Submission, at time.Time) (email.Message, error)
}

// Mailer delivers rendered messages. *email.Dispatcher implements it.
type Mailer interface {
	Send(ctx context.Context, msg email.Message) (string, error)
	Verify(ctx context.Context) error
}

// Result describes a relayed submission.
type Result struct {
	Submission submission.Submission
	MessageID  string
	// RateLimit is the client's window after this submission. Zero when
	// the limiter was unavailable.
	RateLimit ratelimit.Result
}

type Service struct {
	limiter  ratelimit.Limiter
	renderer Renderer
	mailer   Mailer
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*Service)

// WithClock sets the clock used for the submission timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(limiter ratelimit.Limiter, renderer Renderer, mailer Mailer, opts ...Option) *Service {
	s := &Service{
		limiter:  limiter,
		renderer: renderer,
		mailer:   mailer,
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit relays one form submission from clientKey.
func (s *Service) Submit(ctx context.Context, kind submission.Kind, clientKey string, in submission.Input) (Result, error) {
	log := s.log.With(logger.Kind(kind.String()), logger.ClientIP(clientKey))

	sub, err := submission.Normalize(kind, in)
	if err != nil {
		log.WarnContext(ctx, "submission rejected", logger.Error(err))
		return Result{}, err
	}

	res, err := s.limiter.Allow(ctx, clientKey)
	switch {
	case err != nil:
		// fail open on store errors
		log.WarnContext(ctx, "rate limiter unavailable, allowing submission", logger.Error(err))
		res = ratelimit.Result{}
	case !res.Allowed:
		log.WarnContext(ctx, "submission rate limited",
			slog.Int("limit", res.Limit),
			slog.Duration("retry_after", res.RetryAfter()),
		)
		return Result{Submission: sub, RateLimit: res}, res.Err()
	}

	msg, err := s.renderer.Render(sub, s.now())
	if err != nil {
		log.ErrorContext(ctx, "notification render failed", logger.Error(err))
		return Result{Submission: sub, RateLimit: res}, errors.Join(ErrRender, err)
	}

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		log.ErrorContext(ctx, "submission relay failed", logger.Error(err))
		return Result{Submission: sub, RateLimit: res}, err
	}

	log.InfoContext(ctx, "submission relayed", logger.MessageID(id))
	return Result{Submission: sub, MessageID: id, RateLimit: res}, nil
}

// Verify checks that the mail transport can connect and authenticate.
func (s *Service) Verify(ctx context.Context) error {
	if err := s.mailer.Verify(ctx); err != nil {
		return fmt.Errorf("verify mail transport: %w", err)
	}
	return nil
}
