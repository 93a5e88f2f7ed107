package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

type Cache struct {
	redisClient *goRedis.Client
}

type Option func(*goRedis.Options)

func UseTLS(options *goRedis.Options) {
	options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
}

func WithPoolSize(poolSize int) Option {
	return func(options *goRedis.Options) {
		if poolSize > 0 {
			options.PoolSize = poolSize
		}
	}
}

func CreateCache(address, password string, dbSelect int, options ...Option) (*Cache, error) {
	redisOptions := &goRedis.Options{
		Addr:     address,
		Password: password,
		DB:       dbSelect,
	}
	for _, option := range options {
		option(redisOptions)
	}
	redisClient := goRedis.NewClient(redisOptions)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "redis connect failed")
	}
	return &Cache{redisClient: redisClient}, nil
}

func (cache *Cache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := cache.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "exists redis failed")
	}
	return count != 0, nil
}

func (cache *Cache) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	val, err = cache.redisClient.Get(ctx, key).Result()
	if err == goRedis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "get redis failed")
	}
	return val, true, nil
}

func (cache *Cache) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := cache.redisClient.SetEx(ctx, key, value, expiration).Err(); err != nil {
		return errors.Wrap(err, "setex redis failed")
	}
	return nil
}

func (cache *Cache) Del(ctx context.Context, keys ...string) error {
	if err := cache.redisClient.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "del redis failed")
	}
	return nil
}

func (cache *Cache) Close() error {
	return cache.redisClient.Close()
}
