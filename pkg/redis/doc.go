// Package redis connects to the Redis server that backs the shared
// rate-limit store.
//
// Connect parses REDIS_URL, pings with retries and returns a ready client.
// Healthcheck adapts the client to a readiness probe:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := ratelimit.NewRedisStore(client)
//	check := httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}
package redis
