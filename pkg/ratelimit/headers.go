package ratelimit

import (
	"math"
	"net/http"
	"strconv"
)

// SetHeaders writes the X-RateLimit-* headers for r, plus Retry-After
// (whole seconds, rounded up) when the request was rejected.
func SetHeaders(h http.Header, r Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(r.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, r.Remaining)))
	if !r.ResetAt.IsZero() {
		h.Set("X-RateLimit-Reset", strconv.FormatInt(r.ResetAt.Unix(), 10))
	}

	if !r.Allowed {
		retryAfter := int(math.Ceil(r.RetryAfter().Seconds()))
		if retryAfter > 0 {
			h.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}
