package domain

import (
	"context"
	"time"
)

const (
	ShortURLLength = 10

	RateLimitMaxRequests = 120
	RateLimitWindow      = 60 * time.Second
)

type URL struct {
	ID          int64     `json:"id"`
	BaseURL     string    `json:"base_url"`
	ShortURL    string    `json:"short_url" gorm:"uniqueIndex;size:64"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByIP *string   `json:"created_by_ip"`
}

type URLInsert struct {
	BaseURL     string
	ShortURL    string
	CreatedAt   time.Time
	CreatedByIP *string
}

type URLRepo interface {
	Lookup(ctx context.Context, shortURL string) (*URL, error)
	Insert(ctx context.Context, url *URLInsert) (*URL, error)
}

// URLCacheRepo maps a short url to its base url. A miss and a broken cache are both errors,
// callers fall back to URLRepo.
type URLCacheRepo interface {
	Get(ctx context.Context, shortURL string) (string, error)
	Set(ctx context.Context, shortURL string, baseURL string) error
}

type URLUseCase interface {
	Save(ctx context.Context, baseURL, createdByIP string) (*URL, error)
	Get(ctx context.Context, shortURL string) (string, error)
}
