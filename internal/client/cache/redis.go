package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "stockkeeper:cache:"

// Redis stores entries with a PX expiry so several client processes can share
// list responses.
type Redis struct {
	rdb      redis.UniversalClient
	prefix   string
	duration time.Duration
	log      logging.Logger
}

// NewRedisClient connects to a single Redis server at addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// NewRedis stores entries under prefix with a PX expiry of duration. An
// empty prefix means DefaultRedisPrefix.
func NewRedis(rdb redis.UniversalClient, prefix string, duration time.Duration, log logging.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Redis{rdb: rdb, prefix: prefix, duration: duration, log: log}
}

func (r *Redis) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn(ctx, "cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	if !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}

func (r *Redis) Set(ctx context.Context, key string, value json.RawMessage) {
	if err := r.rdb.Set(ctx, r.prefix+key, []byte(value), r.duration).Err(); err != nil {
		r.log.Warn(ctx, "cache set failed", "key", key, "error", err)
	}
}

func (r *Redis) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		full := make([]string, len(keys))
		for i, k := range keys {
			full[i] = r.prefix + k
		}
		if err := r.rdb.Del(ctx, full...).Err(); err != nil {
			r.log.Warn(ctx, "cache invalidate failed", "error", err)
		}
		return
	}

	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.log.Warn(ctx, "cache scan failed", "error", err)
	}
	if len(batch) == 0 {
		return
	}
	if err := r.rdb.Del(ctx, batch...).Err(); err != nil {
		r.log.Warn(ctx, "cache invalidate failed", "error", err)
	}
}

// Ping checks that the server answers.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
