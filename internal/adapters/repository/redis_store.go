package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var _ domain.DocumentStore = (*RedisStore)(nil)

// RedisStore keeps documents as plain string values with no expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "wellness"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(owner, key string) string {
	return fmt.Sprintf("%s:doc:%s:%s", s.prefix, owner, key)
}

func (s *RedisStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(owner, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, owner, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(owner, key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, owner, key string) error {
	if err := s.client.Del(ctx, s.key(owner, key)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
