package limiter

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed limiter with a fixed failure window and lockout.
// It is shared by every API replica.
type Redis struct {
	rdb    *redis.Client
	policy Policy
	prefix string
}

// NewRedis constructs a Redis-backed limiter.
func NewRedis(rdb *redis.Client, p Policy) *Redis {
	return &Redis{rdb: rdb, policy: p, prefix: "login"}
}

func (l *Redis) keys(username string, ipHash []byte) (fails, block string) {
	id := username + ":" + hex.EncodeToString(ipHash)
	return l.prefix + ":fail:" + id, l.prefix + ":block:" + id
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *Redis) Allow(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	_, blockKey := l.keys(username, ipHash)
	ttl, err := l.rdb.PTTL(ctx, blockKey).Result()
	if err != nil {
		return false, 0, err
	}
	// PTTL is negative when the key is missing
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

// Success resets counters for (username, ip).
func (l *Redis) Success(ctx context.Context, username string, ipHash []byte) error {
	failKey, blockKey := l.keys(username, ipHash)
	return l.rdb.Del(ctx, failKey, blockKey).Err()
}

// Failure records a failed attempt; may set a block for the configured period.
func (l *Redis) Failure(ctx context.Context, username string, ipHash []byte) (bool, time.Duration, error) {
	failKey, blockKey := l.keys(username, ipHash)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, failKey)
		p.ExpireNX(ctx, failKey, l.policy.Window)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, err
	}

	if incr.Val() < int64(l.policy.MaxFailures) {
		return false, 0, nil
	}

	_, err = l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, blockKey, 1, l.policy.BlockFor)
		p.Del(ctx, failKey)
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return true, l.policy.BlockFor, nil
}
