package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

// DefaultSendTimeout bounds a single Send or Verify.
const DefaultSendTimeout = 30 * time.Second

// Dispatcher bounds every transport call with a timeout and normalizes
// failures into *DeliveryError.
type Dispatcher struct {
	sender    Sender
	timeout   time.Duration
	transport string
	log       *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

func WithSendTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) DispatcherOption {
	return func(disp *Dispatcher) {
		if l != nil {
			disp.log = l
		}
	}
}

// WithTransportName labels log records with the transport in use.
func WithTransportName(name string) DispatcherOption {
	return func(disp *Dispatcher) { disp.transport = name }
}

func NewDispatcher(sender Sender, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		timeout: DefaultSendTimeout,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type sendResult struct {
	id  string
	err error
}

// Send delivers msg through the wrapped sender. The call returns when the
// sender does or when the timeout expires, whichever comes first.
func (d *Dispatcher) Send(ctx context.Context, msg Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan sendResult, 1)
	go func() {
		id, err := d.sender.Send(ctx, msg)
		done <- sendResult{id: id, err: err}
	}()

	var res sendResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		de := d.classify(ctx, res.err)
		d.log.WarnContext(ctx, "email delivery failed",
			logger.Transport(d.transport),
			logger.DeliveryKind(de.Kind.String()),
			logger.Duration(time.Since(start)),
			logger.Error(res.err),
		)
		return "", de
	}

	d.log.InfoContext(ctx, "email delivered",
		logger.Transport(d.transport),
		logger.MessageID(res.id),
		logger.Duration(time.Since(start)),
	)
	return res.id, nil
}

// Verify checks the wrapped sender under the same timeout as Send.
func (d *Dispatcher) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.sender.Verify(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}

	de := d.classify(ctx, err)
	d.log.WarnContext(ctx, "mail transport verification failed",
		logger.Transport(d.transport),
		logger.DeliveryKind(de.Kind.String()),
		logger.Error(err),
	)
	return de
}

func (d *Dispatcher) classify(ctx context.Context, err error) *DeliveryError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		var de *DeliveryError
		if errors.As(err, &de) {
			err = de.Err
		}
		return &DeliveryError{Kind: Timeout, Err: err}
	}
	return Classify(err)
}
