package container

import (
	"context"

	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/kit/testing"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

type redisContainer struct {
	uri       string
	container *redis.RedisContainer
}

type Option func(*redisConfig)

type redisConfig struct {
	image string
}

func WithImage(image string) Option {
	return func(rc *redisConfig) {
		rc.image = image
	}
}

func CreateRedis(ctx context.Context, options ...Option) (testing.RedisContainer, error) {
	config := &redisConfig{
		image: "docker.io/redis:7-alpine",
	}
	for _, option := range options {
		option(config)
	}

	container, err := redis.RunContainer(ctx,
		testcontainers.WithImage(config.image),
		redis.WithLogLevel(redis.LogLevelNotice),
	)
	if err != nil {
		return nil, errors.Wrap(err, "run container failed")
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get container host failed")
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return nil, errors.Wrap(err, "mapped container port failed")
	}

	return &redisContainer{
		container: container,
		uri:       host + ":" + port.Port(),
	}, nil
}

// GetURI returns host:port, the form redis.CreateCache takes.
func (r *redisContainer) GetURI() string {
	return r.uri
}

func (r *redisContainer) Terminate(ctx context.Context) error {
	if err := r.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate failed")
	}
	return nil
}
