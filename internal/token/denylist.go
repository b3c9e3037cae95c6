package token

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist remembers access tokens revoked before their expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisDenylist keeps one key per revoked jti, expiring with the token.
type RedisDenylist struct {
	rdb    *redis.Client
	prefix string
}

// NewDenylist returns a Redis-backed denylist, or a no-op one when rdb is nil.
func NewDenylist(rdb *redis.Client) Denylist {
	if rdb == nil {
		return NopDenylist{}
	}
	return &RedisDenylist{rdb: rdb, prefix: "revoked:jti:"}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, d.prefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, d.prefix+jti).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}

// NopDenylist never revokes; logout then relies on token expiry.
type NopDenylist struct{}

func (NopDenylist) Revoke(context.Context, string, time.Time) error { return nil }
func (NopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
