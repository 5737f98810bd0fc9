// Package session tracks revoked access tokens in Redis.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth:revoked:"

// Denylist records the jti of every logged-out token until the token would
// have expired anyway. A Denylist without a client is a no-op, which is how
// the API runs when REDIS_URL is empty.
type Denylist struct {
	client *redis.Client
}

// NewDenylist connects to redisURL. An empty URL yields a no-op denylist.
func NewDenylist(redisURL, password string) (*Denylist, error) {
	if redisURL == "" {
		return &Denylist{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Denylist{client: rdb}, nil
}

func NewDenylistWithClient(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Enabled reports whether revocations are actually stored.
func (d *Denylist) Enabled() bool {
	return d != nil && d.client != nil
}

// Revoke marks jti as revoked until expiresAt.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !d.Enabled() {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !d.Enabled() {
		return false, nil
	}
	n, err := d.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) Close() error {
	if !d.Enabled() {
		return nil
	}
	return d.client.Close()
}
