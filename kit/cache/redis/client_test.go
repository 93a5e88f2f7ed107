package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	testingKit "github.com/superj80820/tinyurl/kit/testing"
	testingRedisKit "github.com/superj80820/tinyurl/kit/testing/redis/container"
)

func testCache(t *testing.T, cache *Cache) {
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "key")
	assert.Nil(t, err)
	assert.False(t, exists)

	_, exists, err = cache.Get(ctx, "key")
	assert.Nil(t, err)
	assert.False(t, exists)

	assert.Nil(t, cache.SetEX(ctx, "key", "value", time.Hour))

	val, exists, err := cache.Get(ctx, "key")
	assert.Nil(t, err)
	assert.True(t, exists)
	assert.Equal(t, "value", val)

	assert.Nil(t, cache.Del(ctx, "key"))
	assert.Nil(t, cache.Del(ctx, "key"))
	exists, err = cache.Exists(ctx, "key")
	assert.Nil(t, err)
	assert.False(t, exists)
}

func TestCache(t *testing.T) {
	redisServer := miniredis.RunT(t)

	cache, err := CreateCache(redisServer.Addr(), "", 0, WithPoolSize(4))
	assert.Nil(t, err)
	defer cache.Close()

	testCache(t, cache)

	assert.Nil(t, cache.SetEX(context.Background(), "ttl", "value", time.Hour))
	assert.Equal(t, time.Hour, redisServer.TTL("ttl"))
}

func TestCacheWithPassword(t *testing.T) {
	redisServer := miniredis.RunT(t)
	redisServer.RequireAuth("secret")

	_, err := CreateCache(redisServer.Addr(), "wrong", 0)
	assert.NotNil(t, err)

	cache, err := CreateCache(redisServer.Addr(), "secret", 0)
	assert.Nil(t, err)
	defer cache.Close()

	testCache(t, cache)
}

func TestCacheWithContainer(t *testing.T) {
	if !testingKit.EnableContainerTest() {
		t.Skip("set ENABLE_CONTAINER_TEST=true to run")
	}
	ctx := context.Background()

	redisContainer, err := testingRedisKit.CreateRedis(ctx)
	assert.Nil(t, err)
	defer redisContainer.Terminate(ctx)

	cache, err := CreateCache(redisContainer.GetURI(), "", 0)
	assert.Nil(t, err)
	defer cache.Close()

	testCache(t, cache)
}
