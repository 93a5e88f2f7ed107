// Package ratelimit holds what the rate limit implementations share with the http middleware.
package ratelimit

import (
	"context"

	"github.com/pkg/errors"
)

var ErrRateLimited = errors.New("rate limited")

// PassFunc reports whether the request identified by key may proceed, how many requests are
// left in the current window and in how many seconds the window frees up again.
type PassFunc func(ctx context.Context, key string) (pass bool, lastRequests, curExpiry int, err error)
