package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/domain"
	cacheKit "github.com/superj80820/tinyurl/kit/cache"
	"github.com/superj80820/tinyurl/kit/code"
	loggerKit "github.com/superj80820/tinyurl/kit/logger"
	utilKit "github.com/superj80820/tinyurl/kit/util"
)

type urlUseCase struct {
	urlRepo  domain.URLRepo
	urlCache domain.URLCacheRepo
	logger   *loggerKit.Logger
	now      func() time.Time
}

type Option func(*urlUseCase)

func WithNow(now func() time.Time) Option {
	return func(u *urlUseCase) {
		u.now = now
	}
}

func CreateURLUseCase(urlRepo domain.URLRepo, urlCache domain.URLCacheRepo, logger *loggerKit.Logger, options ...Option) domain.URLUseCase {
	u := &urlUseCase{
		urlRepo:  urlRepo,
		urlCache: urlCache,
		logger:   logger,
		now:      time.Now,
	}
	for _, option := range options {
		option(u)
	}
	return u
}

func isHTTPURL(url string) bool {
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}

// Save stores url under a fresh random token. Token collisions are not retried,
// the store rejects them and the caller gets an internal error.
func (u *urlUseCase) Save(ctx context.Context, baseURL, createdByIP string) (*domain.URL, error) {
	if !isHTTPURL(baseURL) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
	}

	shortURL, err := utilKit.GetRandomAlphanumeric(domain.ShortURLLength)
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusInternalServerError).AddErrorMetaData(errors.Wrap(err, "generate short url failed"))
	}

	var ip *string
	if createdByIP != "" {
		ip = &createdByIP
	}

	url, err := u.urlRepo.Insert(ctx, &domain.URLInsert{
		BaseURL:     baseURL,
		ShortURL:    shortURL,
		CreatedAt:   u.now(),
		CreatedByIP: ip,
	})
	if err != nil {
		return nil, code.CreateErrorCode(http.StatusInternalServerError).AddErrorMetaData(errors.Wrap(err, "save url failed"))
	}

	return url, nil
}

func (u *urlUseCase) Get(ctx context.Context, shortURL string) (string, error) {
	if shortURL == "" {
		return "", code.CreateErrorCode(http.StatusNotFound)
	}

	baseURL, err := u.urlCache.Get(ctx, shortURL)
	if err == nil {
		return baseURL, nil
	}
	if !errors.Is(err, cacheKit.ErrNotFound) {
		u.logger.Warn("get url cache failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
	}

	url, err := u.urlRepo.Lookup(ctx, shortURL)
	if err != nil {
		if !errors.Is(err, domain.ErrNoData) {
			u.logger.Error("lookup url failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
		}
		return "", code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	}

	if err := u.urlCache.Set(ctx, url.ShortURL, url.BaseURL); err != nil {
		u.logger.Warn("set url cache failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
	}

	return url.BaseURL, nil
}
