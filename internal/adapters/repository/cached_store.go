package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

var _ domain.DocumentStore = (*CachedStore)(nil)

const DefaultCacheTTL = 30 * time.Minute

// CachedStore is a read-through Redis cache in front of another store.
// Writes go to the backing store first and then drop the cached copy.
type CachedStore struct {
	next  domain.DocumentStore
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedStore(next domain.DocumentStore, cache *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *CachedStore) cacheKey(owner, key string) string {
	return fmt.Sprintf("docs:%s:%s", owner, key)
}

// versionKey counts writes to a document. A read only fills the cache when
// no write landed between loading the document and storing the copy.
func (s *CachedStore) versionKey(owner, key string) string {
	return fmt.Sprintf("docs_version:%s:%s", owner, key)
}

func (s *CachedStore) invalidate(ctx context.Context, owner, key string) {
	vk := s.versionKey(owner, key)
	_, err := s.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vk)
		pipe.Expire(ctx, vk, 2*s.ttl)
		pipe.Del(ctx, s.cacheKey(owner, key))
		return nil
	})
	if err != nil {
		log.Printf("[CACHE] Failed to invalidate %s for owner %s: %v", key, owner, err)
	}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func version(ctx context.Context, rdb stringGetter, vk string) (int64, error) {
	v, err := rdb.Get(ctx, vk).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// fill caches data unless the document version moved away from seen.
func (s *CachedStore) fill(ctx context.Context, owner, key string, seen int64, data []byte) {
	vk := s.versionKey(owner, key)
	err := s.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := version(ctx, tx, vk)
		if err != nil {
			return err
		}
		if current != seen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.cacheKey(owner, key), data, s.ttl)
			return nil
		})
		return err
	}, vk)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		// a write raced the read; the next miss fills the cache
	case err != nil:
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (s *CachedStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	ck := s.cacheKey(owner, key)

	val, err := s.cache.Get(ctx, ck).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	seen, verErr := version(ctx, s.cache, s.versionKey(owner, key))

	data, err := s.next.Get(ctx, owner, key)
	if err != nil {
		return nil, err
	}

	if verErr != nil {
		log.Printf("[CACHE] Redis read error: %v", verErr)
		return data, nil
	}
	s.fill(ctx, owner, key, seen, data)

	return data, nil
}

func (s *CachedStore) Put(ctx context.Context, owner, key string, data []byte) error {
	if err := s.next.Put(ctx, owner, key, data); err != nil {
		return err
	}
	s.invalidate(ctx, owner, key)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, owner, key string) error {
	defer s.invalidate(ctx, owner, key)
	return s.next.Delete(ctx, owner, key)
}
