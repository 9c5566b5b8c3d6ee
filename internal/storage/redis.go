package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMedium stores snapshots as plain redis strings. Zero TTL means the
// keys never expire.
type RedisMedium struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisMedium(client *redis.Client, prefix string) *RedisMedium {
	return &RedisMedium{Client: client, Prefix: prefix}
}

func (m *RedisMedium) key(key string) string {
	if m.Prefix == "" {
		return key
	}
	return m.Prefix + ":" + key
}

func (m *RedisMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := m.Client.Get(ctx, m.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (m *RedisMedium) Set(ctx context.Context, key string, value []byte) error {
	return m.Client.Set(ctx, m.key(key), value, m.TTL).Err()
}

func (m *RedisMedium) Delete(ctx context.Context, key string) error {
	return m.Client.Del(ctx, m.key(key)).Err()
}
