package middleware

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/kit/code"
	httpKit "github.com/superj80820/tinyurl/kit/http"
	"github.com/superj80820/tinyurl/kit/ratelimit"
)

// CreateRateLimitMiddleware keys every request by the client ip.
func CreateRateLimitMiddleware(passFunc ratelimit.PassFunc) endpoint.Middleware {
	return createRateLimitMiddleware(httpKit.GetIP, passFunc)
}

func createRateLimitMiddleware(getKey func(ctx context.Context) string, passFunc ratelimit.PassFunc) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			pass, _, expiry, err := passFunc(ctx, getKey(ctx))
			if err != nil {
				return nil, errors.Wrap(err, "get rate limit failed")
			}
			if !pass {
				return nil, code.CreateErrorCode(http.StatusTooManyRequests).AddCode(code.RateLimit, expiry)
			}
			return e(ctx, request)
		}
	}
}
