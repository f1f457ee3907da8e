package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/24dai03-saifchaus/algonexus/internal/cache"
	"github.com/24dai03-saifchaus/algonexus/internal/cache/redis"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	cache.RunContract(t, redis.NewFromClient(client))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))

	tr := trace.Trace{{Array: []int{1}, Highlights: []int{}, Swaps: []int{}, Line: 1, Kind: trace.KindInit}}
	require.NoError(t, store.Put(context.Background(), "abc", tr))

	assert.True(t, mr.Exists("test:abc"))
	assert.Equal(t, time.Minute, mr.TTL("test:abc"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set("algonexus:trace:bad", "{not json"))
	_, _, err := store.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRedisStore_Ping(t *testing.T) {
	mr, _ := setup(t)
	store := redis.New(mr.Addr(), "", 0)
	defer store.Close()
	assert.NoError(t, store.Ping(context.Background()))
}
