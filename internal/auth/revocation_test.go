package auth

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocations(t *testing.T) {
	revs := NewMemoryRevocations()
	ctx := context.Background()

	ok, err := revs.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, revs.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	ok, err = revs.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	// Already-expired tokens need no entry.
	require.NoError(t, revs.Revoke(ctx, "b", time.Now().Add(-time.Minute)))
	ok, err = revs.IsRevoked(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRevocations_Expire(t *testing.T) {
	revs := NewMemoryRevocations()
	ctx := context.Background()
	now := time.Now()
	revs.now = func() time.Time { return now }

	require.NoError(t, revs.Revoke(ctx, "a", now.Add(time.Minute)))
	now = now.Add(2 * time.Minute)

	ok, err := revs.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, revs.Revoke(ctx, "c", now.Add(time.Minute)))
	assert.NotContains(t, revs.revoked, "a")
}

// heldExists answers EXISTS without a server once release is closed, and
// records whether the lookup context was still alive at that point.
type heldExists struct {
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (h *heldExists) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *heldExists) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.started <- struct{}{}
		<-h.release
		h.ctxErr <- ctx.Err()
		cmd.(*redis.IntCmd).SetVal(1)
		return nil
	}
}

func (h *heldExists) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisRevocations_LookupOutlivesCaller(t *testing.T) {
	hook := &heldExists{
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 2),
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	rdb.AddHook(hook)
	revs := NewRedisRevocations(rdb)

	type result struct {
		revoked bool
		err     error
	}
	first, cancel := context.WithCancel(context.Background())
	firstRes := make(chan result, 1)
	go func() {
		ok, err := revs.IsRevoked(first, "jti-1")
		firstRes <- result{ok, err}
	}()
	<-hook.started

	secondRes := make(chan result, 1)
	go func() {
		ok, err := revs.IsRevoked(context.Background(), "jti-1")
		secondRes <- result{ok, err}
	}()

	cancel()
	r1 := <-firstRes
	assert.ErrorIs(t, r1.err, context.Canceled)

	close(hook.release)
	r2 := <-secondRes
	require.NoError(t, r2.err)
	assert.True(t, r2.revoked)
	assert.NoError(t, <-hook.ctxErr)
}

func TestRedisRevocations(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	revs := NewRedisRevocations(rdb)
	ctx := context.Background()
	jti := uuid.NewString()

	ok, err := revs.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, revs.Revoke(ctx, jti, time.Now().Add(time.Minute)))
	ok, err = revs.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := rdb.TTL(ctx, revokedKeyPrefix+jti).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
