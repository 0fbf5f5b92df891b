package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted event leaves the window, freeing a slot.
	ResetAt time.Time
	// CheckedAt is the limiter clock reading used for the check.
	CheckedAt time.Time
}

// RetryAfter returns how long a rejected client should wait. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed || r.ResetAt.IsZero() {
		return 0
	}
	return max(0, r.ResetAt.Sub(r.CheckedAt))
}

// Err returns an *ExceededError for rejected results and nil otherwise.
func (r Result) Err() error {
	if r.Allowed {
		return nil
	}
	return &ExceededError{Result: r}
}

// Limiter is the capability consumed by the relay pipeline.
type Limiter interface {
	// Allow records one event for key if the window has room.
	Allow(ctx context.Context, key string) (Result, error)
	// Status reports the current window without recording.
	Status(ctx context.Context, key string) (Result, error)
	// Reset forgets every event recorded for key.
	Reset(ctx context.Context, key string) error
}

// Window is a store's view of one key after pruning.
type Window struct {
	// Recorded is true when the store appended the event.
	Recorded bool
	// Count of events inside the window, including a recorded one.
	Count int
	// Oldest event still inside the window. Zero when Count is 0.
	Oldest time.Time
}

// Store persists per-key event logs. Record must prune, check and append
// atomically for a key.
type Store interface {
	Record(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (Window, error)
	Count(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error)
	Delete(ctx context.Context, key string) error
}
