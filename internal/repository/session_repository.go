package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisapp "sweetcrumb/internal/storage/redis"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "admin_session:"

// RedisSessionRepo keeps admin sessions in redis so they survive restarts
// and are shared between instances. Expiry is the key TTL.
type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

func (r *RedisSessionRepo) SaveSession(ctx context.Context, token string, ttl time.Duration) error {
	const op = "repository.RedisSessionRepo.SaveSession"

	if err := r.Client.Set(ctx, sessionKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisSessionRepo) SessionValid(ctx context.Context, token string) (bool, error) {
	const op = "repository.RedisSessionRepo.SessionValid"

	val, err := r.Client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return val == "1", nil
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, token string) error {
	const op = "repository.RedisSessionRepo.DeleteSession"

	if err := r.Client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// MemorySessionRepo is the single instance default. Sessions are lost on
// restart.
type MemorySessionRepo struct {
	c *cache.Cache
}

func NewMemorySessionRepo(cleanup time.Duration) *MemorySessionRepo {
	return &MemorySessionRepo{
		c: cache.New(cache.NoExpiration, cleanup),
	}
}

func (m *MemorySessionRepo) SaveSession(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("repository.MemorySessionRepo.SaveSession: ttl must be positive")
	}

	m.c.Set(token, struct{}{}, ttl)

	return nil
}

// SessionValid relies on go-cache hiding expired items from Get even
// before the janitor removes them.
func (m *MemorySessionRepo) SessionValid(_ context.Context, token string) (bool, error) {
	_, ok := m.c.Get(token)
	return ok, nil
}

func (m *MemorySessionRepo) DeleteSession(_ context.Context, token string) error {
	m.c.Delete(token)
	return nil
}
