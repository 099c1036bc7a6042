package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"inkspace/internal/domain"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss      = errors.New("session not cached")
	ErrSessionRevoked = errors.New("session revoked")
)

// SessionCache remembers the user behind a token, and tokens that were
// logged out before they expired.
type SessionCache interface {
	Load(ctx context.Context, token string) (*domain.User, error)
	Store(ctx context.Context, token string, u *domain.User, ttl time.Duration) error
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type cachedSession struct {
	User    *domain.User `json:"user,omitempty"`
	Revoked bool         `json:"revoked,omitempty"`
}

// MemoryCache is a process-local SessionCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	session   cachedSession
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *MemoryCache) Load(_ context.Context, token string) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := tokenKey(token)
	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	if e.session.Revoked {
		return nil, ErrSessionRevoked
	}
	return e.session.User, nil
}

func (c *MemoryCache) Store(_ context.Context, token string, u *domain.User, ttl time.Duration) error {
	c.put(token, cachedSession{User: u}, ttl)
	return nil
}

func (c *MemoryCache) Revoke(_ context.Context, token string, ttl time.Duration) error {
	c.put(token, cachedSession{Revoked: true}, ttl)
	return nil
}

func (c *MemoryCache) put(token string, s cachedSession, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[tokenKey(token)] = memoryEntry{session: s, expiresAt: now.Add(ttl)}
}

// RedisCache shares sessions between service instances.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: "inkspace:session:"}
}

func (c *RedisCache) Load(ctx context.Context, token string) (*domain.User, error) {
	bs, err := c.rdb.Get(ctx, c.prefix+tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var s cachedSession
	if err := json.Unmarshal(bs, &s); err != nil {
		return nil, ErrCacheMiss
	}
	if s.Revoked {
		return nil, ErrSessionRevoked
	}
	if s.User == nil {
		return nil, ErrCacheMiss
	}
	return s.User, nil
}

func (c *RedisCache) Store(ctx context.Context, token string, u *domain.User, ttl time.Duration) error {
	return c.set(ctx, token, cachedSession{User: u}, ttl)
}

func (c *RedisCache) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return c.set(ctx, token, cachedSession{Revoked: true}, ttl)
}

func (c *RedisCache) set(ctx context.Context, token string, s cachedSession, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	bs, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := c.rdb.SetEx(ctx, c.prefix+tokenKey(token), bs, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
