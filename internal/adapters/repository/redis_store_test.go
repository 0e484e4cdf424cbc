package repository

import (
	"context"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/cache"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.Connect(context.Background(), cache.Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		DB:       2,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisStore(t *testing.T) {
	rdb := setupRedis(t)
	runStoreContract(t, NewRedisStore(rdb, "test"))
}

func TestCachedStore(t *testing.T) {
	rdb := setupRedis(t)
	runStoreContract(t, NewCachedStore(NewInMemoryStore(), rdb, time.Minute))
}

func TestCachedStore_ReadThroughAndInvalidate(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	backing := NewInMemoryStore()
	store := NewCachedStore(backing, rdb, time.Minute)

	require.NoError(t, store.Put(ctx, "owner-rt", "programs", []byte(`[1]`)))

	_, err := store.Get(ctx, "owner-rt", "programs")
	require.NoError(t, err)

	cached, err := rdb.Get(ctx, store.cacheKey("owner-rt", "programs")).Result()
	require.NoError(t, err)
	assert.Equal(t, `[1]`, cached)

	require.NoError(t, store.Put(ctx, "owner-rt", "programs", []byte(`[2]`)))

	_, err = rdb.Get(ctx, store.cacheKey("owner-rt", "programs")).Result()
	assert.ErrorIs(t, err, redis.Nil, "write should drop the cached copy")

	data, err := store.Get(ctx, "owner-rt", "programs")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(data))
}

// interleavedStore runs duringGet once, after the document has been read
// from the backing store but before the caller sees it.
type interleavedStore struct {
	*InMemoryStore
	duringGet func()
}

func (s *interleavedStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	data, err := s.InMemoryStore.Get(ctx, owner, key)
	if hook := s.duringGet; hook != nil {
		s.duringGet = nil
		hook()
	}
	return data, err
}

func TestCachedStore_WriteDuringMissIsNotOverwritten(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()

	backing := &interleavedStore{InMemoryStore: NewInMemoryStore()}
	store := NewCachedStore(backing, rdb, time.Minute)
	require.NoError(t, rdb.Del(ctx, store.cacheKey("owner-race", "goals")).Err())

	require.NoError(t, store.Put(ctx, "owner-race", "goals", []byte(`{"steps":8000}`)))

	backing.duringGet = func() {
		require.NoError(t, store.Put(ctx, "owner-race", "goals", []byte(`{"steps":5000}`)))
	}

	stale, err := store.Get(ctx, "owner-race", "goals")
	require.NoError(t, err)
	assert.Equal(t, `{"steps":8000}`, string(stale))

	_, err = rdb.Get(ctx, store.cacheKey("owner-race", "goals")).Result()
	assert.ErrorIs(t, err, redis.Nil, "a read that lost the race must not fill the cache")

	data, err := store.Get(ctx, "owner-race", "goals")
	require.NoError(t, err)
	assert.Equal(t, `{"steps":5000}`, string(data))

	cached, err := rdb.Get(ctx, store.cacheKey("owner-race", "goals")).Result()
	require.NoError(t, err)
	assert.Equal(t, `{"steps":5000}`, cached)
}
