package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDenylist(t *testing.T) (*Denylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	d := NewDenylistWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { d.Close() })
	return d, mr
}

func TestDenylist_RevokeUntilExpiry(t *testing.T) {
	d, mr := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("auth:revoked:jti-1"))

	mr.FastForward(2 * time.Hour)

	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDenylist_ExpiredTokenIsNotStored(t *testing.T) {
	d, mr := newTestDenylist(t)

	require.NoError(t, d.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("auth:revoked:old"))
}

func TestDenylist_Disabled(t *testing.T) {
	d, err := NewDenylist("", "")
	require.NoError(t, err)
	assert.False(t, d.Enabled())

	require.NoError(t, d.Revoke(context.Background(), "jti", time.Now().Add(time.Hour)))
	revoked, err := d.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, d.Close())
}

func TestNewDenylist_URL(t *testing.T) {
	mr := miniredis.RunT(t)

	d, err := NewDenylist("redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	defer d.Close()
	assert.True(t, d.Enabled())

	_, err = NewDenylist("not a url", "")
	assert.Error(t, err)
}
