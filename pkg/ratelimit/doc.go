// Package ratelimit implements a trailing-log sliding window limiter.
//
// Every accepted event stores its timestamp under a client key. A check
// discards timestamps older than the window, rejects when the remaining
// count has reached the limit and otherwise records the new timestamp.
// Rejections never record, so a client hammering the endpoint does not
// extend its own ban.
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimit.NewSlidingWindow(store, 5, 15*time.Minute)
//	res, err := limiter.Allow(ctx, clientIP)
//	if err != nil { ... }
//	if err := res.Err(); err != nil {
//		// errors.Is(err, ratelimit.ErrRateLimitExceeded)
//	}
//
// MemoryStore keeps state per process and evicts idle keys in the
// background. RedisStore keeps state in sorted sets so several relay
// instances share one budget per client.
package ratelimit
