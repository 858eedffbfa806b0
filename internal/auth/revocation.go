package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	revokedKeyPrefix = "revoked:"
	lookupTimeout    = 2 * time.Second
)

// Revocations remembers logged-out tokens until they would have expired anyway.
type Revocations interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocations keeps revoked token ids in Redis with a TTL.
type RedisRevocations struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func NewRedisRevocations(rdb *redis.Client) *RedisRevocations {
	return &RedisRevocations{rdb: rdb}
}

func (r *RedisRevocations) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked collapses concurrent lookups of the same token into one round
// trip. The shared lookup is detached from any single caller, so one
// request going away does not fail the others waiting on it.
func (r *RedisRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ch := r.sf.DoChan(jti, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		n, err := r.rdb.Exists(lookupCtx, revokedKeyPrefix+jti).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}

// MemoryRevocations is the single-process fallback used when Redis is not configured.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocations) Revoke(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	if until.After(now) {
		m.revoked[jti] = until
	}
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[jti]
	return ok && exp.After(m.now()), nil
}
