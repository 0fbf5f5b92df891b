package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// recordScript prunes, counts and conditionally appends in one round trip.
// Scores are unix microseconds.
//
// KEYS[1] key
// ARGV[1] now, ARGV[2] window, ARGV[3] limit, ARGV[4] member, ARGV[5] "1" to record
// Returns {recorded, count, oldest} with oldest = -1 when empty.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)

local recorded = 0
if ARGV[5] == '1' and count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	count = count + 1
	recorded = 1
end

local oldest = -1
if count > 0 then
	local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	oldest = tonumber(first[2])
	redis.call('PEXPIRE', key, math.ceil(window / 1000))
end

return {recorded, count, oldest}
`)

// RedisStore keeps one sorted set per key so several processes share limits.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces keys. Default "formrelay:ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "formrelay:ratelimit:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Record(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (Window, error) {
	return s.run(ctx, key, now, window, limit, true)
}

func (s *RedisStore) Count(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	return s.run(ctx, key, now, window, 0, false)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *RedisStore) run(ctx context.Context, key string, now time.Time, window time.Duration, limit int, record bool) (Window, error) {
	flag := "0"
	if record {
		flag = "1"
	}
	nowMicros := now.UnixMicro()
	member := strconv.FormatInt(nowMicros, 10) + "-" + uuid.NewString()

	vals, err := recordScript.Run(ctx, s.client, []string{s.prefix + key},
		nowMicros, window.Microseconds(), limit, member, flag,
	).Int64Slice()
	if err != nil {
		return Window{}, err
	}
	if len(vals) != 3 {
		return Window{}, fmt.Errorf("unexpected script reply of %d values", len(vals))
	}

	w := Window{Recorded: vals[0] == 1, Count: int(vals[1])}
	if vals[2] >= 0 {
		w.Oldest = time.UnixMicro(vals[2])
	}
	return w, nil
}
