package ratelimit

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrKeyRequired       = errors.New("key is required")
	ErrStoreRequired     = errors.New("store is required")
	ErrStoreFailure      = errors.New("rate limit store failure")
)

// ExceededError carries the limiter state at the time of rejection.
// It matches ErrRateLimitExceeded with errors.Is.
type ExceededError struct {
	Result Result
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s: %d requests per window, retry in %s",
		ErrRateLimitExceeded, e.Result.Limit, e.Result.RetryAfter())
}

func (e *ExceededError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}
