package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value    string
	expireAt time.Time
}

// Cache keeps entries in process, used when no redis is configured. Expired entries are
// dropped on access.
type Cache struct {
	lock    sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

type Option func(*Cache)

func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func CreateCache(options ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.load(key)
	return ok, nil
}

func (c *Cache) Get(ctx context.Context, key string) (val string, exists bool, err error) {
	e, ok := c.load(key)
	if !ok {
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *Cache) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entries[key] = &entry{
		value:    value,
		expireAt: c.now().Add(expiration),
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *Cache) load(key string) (*entry, bool) {
	c.lock.RLock()
	e, ok := c.entries[key]
	c.lock.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Before(e.expireAt) {
		return e, true
	}

	c.lock.Lock()
	if cur, ok := c.entries[key]; ok && cur == e {
		delete(c.entries, key)
	}
	c.lock.Unlock()
	return nil, false
}
