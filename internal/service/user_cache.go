package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/pkg/cache"
	"github.com/Payphone-Digital/admin-panel/pkg/circuit"
	ctxutil "github.com/Payphone-Digital/admin-panel/pkg/context"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/redis"
)

var errCacheMiss = errors.New("cache miss")

type cacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// cachedUser is the cached projection of a user. The password hash is never cached.
type cachedUser struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          *string    `json:"name"`
	EmailVerified *time.Time `json:"email_verified"`
	Role          string     `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserCache is a read-through cache of users by id. A nil *UserCache is
// valid and caches nothing. Backend failures are logged and read as misses.
type UserCache struct {
	backend cacheBackend
	ttl     time.Duration
}

// NewRedisUserCache stores users in redis, failing fast while breaker is open.
func NewRedisUserCache(client *redis.Client, breaker *circuit.Breaker, ttl time.Duration) *UserCache {
	return &UserCache{backend: &redisBackend{client: client, breaker: breaker}, ttl: ttl}
}

// NewMemoryUserCache keeps users in process memory.
func NewMemoryUserCache(store *cache.Cache[[]byte], ttl time.Duration) *UserCache {
	return &UserCache{backend: memoryBackend{store: store}, ttl: ttl}
}

func userCacheKey(id string) string {
	return constants.CacheKeyUser + id
}

func (c *UserCache) Get(ctx context.Context, id string) (*model.User, bool) {
	if c == nil {
		return nil, false
	}
	ctx = ctxutil.WithFunction(ctx, "cache", "GetUser")

	data, err := c.backend.Get(ctx, userCacheKey(id))
	if err != nil {
		if !errors.Is(err, errCacheMiss) {
			logger.WarnWithContext(ctx, "User cache read failed").
				String("target_user_id", id).
				Err(err).
				Log()
		}
		return nil, false
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		logger.WarnWithContext(ctx, "Dropping undecodable cache entry").
			String("target_user_id", id).
			Err(err).
			Log()
		c.Invalidate(ctx, id)
		return nil, false
	}

	logger.DebugWithContext(ctx, "User cache hit").
		String("target_user_id", id).
		Log()

	return &model.User{
		ID:            cu.ID,
		Email:         cu.Email,
		Name:          cu.Name,
		EmailVerified: cu.EmailVerified,
		Role:          cu.Role,
		CreatedAt:     cu.CreatedAt,
		UpdatedAt:     cu.UpdatedAt,
	}, true
}

func (c *UserCache) Set(ctx context.Context, u *model.User) {
	if c == nil || u == nil {
		return
	}
	ctx = ctxutil.WithFunction(ctx, "cache", "SetUser")

	data, err := json.Marshal(cachedUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	})
	if err != nil {
		return
	}

	if err := c.backend.Set(ctx, userCacheKey(u.ID), data, c.ttl); err != nil {
		logger.WarnWithContext(ctx, "User cache write failed").
			String("target_user_id", u.ID).
			Err(err).
			Log()
	}
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	ctx = ctxutil.WithFunction(ctx, "cache", "InvalidateUser")

	if err := c.backend.Delete(ctx, userCacheKey(id)); err != nil {
		logger.WarnWithContext(ctx, "User cache invalidation failed").
			String("target_user_id", id).
			Err(err).
			Log()
	}
}

type redisBackend struct {
	client  *redis.Client
	breaker *circuit.Breaker
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		data, err = b.client.Get(ctx, key)
		if errors.Is(err, redis.ErrMiss) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errCacheMiss
	}
	return data, nil
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.breaker.Execute(ctx, func(ctx context.Context) error {
		return b.client.Set(ctx, key, value, ttl)
	})
}

func (b *redisBackend) Delete(ctx context.Context, key string) error {
	return b.breaker.Execute(ctx, func(ctx context.Context) error {
		return b.client.Delete(ctx, key)
	})
}

type memoryBackend struct {
	store *cache.Cache[[]byte]
}

func (b memoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := b.store.Get(key); ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (b memoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	b.store.Set(key, value, ttl)
	return nil
}

func (b memoryBackend) Delete(_ context.Context, key string) error {
	b.store.Delete(key)
	return nil
}
