package cache

import (
	"context"
	"fmt"
	"time"
)

const revokedKeyPrefix = "revoked:"

// TokenDenylist remembers revoked token ids until the tokens would have
// expired anyway. A nil *TokenDenylist is valid and never reports a token as
// revoked, which is what runs when no Redis is configured.
type TokenDenylist struct {
	c   Cache
	now func() time.Time
}

func NewTokenDenylist(c Cache) *TokenDenylist {
	if c == nil {
		return nil
	}
	return &TokenDenylist{c: c, now: time.Now}
}

// Revoke marks jti as revoked until `until`. Tokens that already expired are
// not stored.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	if d == nil {
		return nil
	}
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.c.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if d == nil {
		return false, nil
	}
	n, err := d.c.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("IsRevoked: %w", err)
	}
	return n > 0, nil
}

// Enabled reports whether revocation is backed by a cache.
func (d *TokenDenylist) Enabled() bool {
	return d != nil
}
