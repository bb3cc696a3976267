package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists the session record under a fixed Redis key. It is
// meant for worker fleets and long-running services that share one logical
// session across processes; the key doubles as the storage namespace.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStorage returns an adapter writing to key on client. A zero ttl
// persists the record without expiry; otherwise every Save rearms the TTL so
// an abandoned session eventually disappears together with its refresh
// token.
func NewRedisStorage(client *redis.Client, key string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Load implements [Storage].
func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoState
		}
		return nil, err
	}
	return data, nil
}

// Save implements [Storage].
func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}
