// Package cache is a read-through cache handler over a remote key value store with native TTL.
//
// Values are stored as JSON. A value that no longer decodes is deleted on read so the next
// write repopulates it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	loggerKit "github.com/superj80820/tinyurl/kit/logger"
)

var (
	ErrNotFound              = errors.New("cache key not found")
	ErrDeserializationFailed = errors.New("failed to deserialize value")
	ErrTransport             = errors.New("cache transport failed")
)

type TimeToLive time.Duration

const (
	OneHour TimeToLive = TimeToLive(time.Hour)
	OneWeek TimeToLive = TimeToLive(7 * 24 * time.Hour)

	DefaultTimeToLive = OneHour
)

// Store is the remote side, EXISTS / GET / SETEX / DEL.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (val string, exists bool, err error)
	SetEX(ctx context.Context, key string, value string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// transportError keeps both ErrTransport and the store error in the chain.
func transportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// LatencyObserver receives the elapsed time of every operation.
type LatencyObserver func(operation string, elapsed time.Duration)

type handlerConfig struct {
	logger    *loggerKit.Logger
	observers []LatencyObserver
}

type Option func(*handlerConfig)

func WithLogger(logger *loggerKit.Logger) Option {
	return func(h *handlerConfig) {
		h.logger = logger
	}
}

func WithLatencyObserver(observer LatencyObserver) Option {
	return func(h *handlerConfig) {
		h.observers = append(h.observers, observer)
	}
}

type Handler[T any] struct {
	store Store
	handlerConfig
}

func CreateHandler[T any](store Store, options ...Option) *Handler[T] {
	config := handlerConfig{
		logger: loggerKit.CreateNoOpLogger(),
	}
	for _, option := range options {
		option(&config)
	}
	return &Handler[T]{
		store:         store,
		handlerConfig: config,
	}
}

func (h *Handler[T]) Has(ctx context.Context, key string) (bool, error) {
	defer h.observe("has", time.Now())

	exists, err := h.store.Exists(ctx, key)
	if err != nil {
		return false, transportError(err)
	}
	return exists, nil
}

func (h *Handler[T]) Get(ctx context.Context, key string) (T, error) {
	defer h.observe("get", time.Now())

	var noop T
	val, exists, err := h.store.Get(ctx, key)
	if err != nil {
		return noop, transportError(err)
	}
	if !exists {
		return noop, ErrNotFound
	}

	var res T
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		if err := h.store.Del(ctx, key); err != nil {
			h.logger.Warn("delete undecodable cache key failed", loggerKit.String("key", key), loggerKit.Error(err))
		}
		return noop, fmt.Errorf("%w: %w", ErrDeserializationFailed, err)
	}
	return res, nil
}

func (h *Handler[T]) Set(ctx context.Context, key string, value T) error {
	return h.SetTTL(ctx, key, value, DefaultTimeToLive)
}

func (h *Handler[T]) SetTTL(ctx context.Context, key string, value T, ttl TimeToLive) error {
	defer h.observe("set", time.Now())

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to serialize value")
	}
	if err := h.store.SetEX(ctx, key, string(data), time.Duration(ttl)); err != nil {
		return transportError(err)
	}
	return nil
}

// Del succeeds on absent keys.
func (h *Handler[T]) Del(ctx context.Context, key string) error {
	defer h.observe("del", time.Now())

	if err := h.store.Del(ctx, key); err != nil {
		return transportError(err)
	}
	return nil
}

func (h *Handler[T]) observe(operation string, begin time.Time) {
	elapsed := time.Since(begin)
	h.logger.Debug("cache operation", loggerKit.String("operation", operation), loggerKit.Duration("elapsed", elapsed))
	for _, observer := range h.observers {
		observer(operation, elapsed)
	}
}
