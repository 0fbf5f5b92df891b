package ratelimit

import (
	"context"
	"errors"
	"time"
)

// SlidingWindow allows at most limit events per key in any trailing window.
type SlidingWindow struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// Option configures a SlidingWindow.
type Option func(*SlidingWindow)

// WithClock replaces time.Now. Used by tests to step through a window.
func WithClock(now func() time.Time) Option {
	return func(sw *SlidingWindow) {
		if now != nil {
			sw.now = now
		}
	}
}

// NewSlidingWindow creates a sliding window limiter over store.
func NewSlidingWindow(store Store, limit int, window time.Duration, opts ...Option) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	sw := &SlidingWindow{store: store, limit: limit, window: window, now: time.Now}
	for _, opt := range opts {
		opt(sw)
	}
	return sw, nil
}

// Limit returns the configured maximum events per window.
func (sw *SlidingWindow) Limit() int { return sw.limit }

// Window returns the configured window length.
func (sw *SlidingWindow) Window() time.Duration { return sw.window }

func (sw *SlidingWindow) Allow(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrKeyRequired
	}
	now := sw.now()
	w, err := sw.store.Record(ctx, key, now, sw.window, sw.limit)
	if err != nil {
		return Result{}, errors.Join(ErrStoreFailure, err)
	}
	return sw.result(w, w.Recorded, now), nil
}

func (sw *SlidingWindow) Status(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrKeyRequired
	}
	now := sw.now()
	w, err := sw.store.Count(ctx, key, now, sw.window)
	if err != nil {
		return Result{}, errors.Join(ErrStoreFailure, err)
	}
	return sw.result(w, w.Count < sw.limit, now), nil
}

func (sw *SlidingWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := sw.store.Delete(ctx, key); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (sw *SlidingWindow) result(w Window, allowed bool, now time.Time) Result {
	res := Result{
		Allowed:   allowed,
		Limit:     sw.limit,
		Remaining: max(0, sw.limit-w.Count),
		CheckedAt: now,
		ResetAt:   now,
	}
	if !w.Oldest.IsZero() {
		res.ResetAt = w.Oldest.Add(sw.window)
	}
	return res
}
