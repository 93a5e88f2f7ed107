package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/tinyurl/kit/code"
	httpKit "github.com/superj80820/tinyurl/kit/http"
	loggerKit "github.com/superj80820/tinyurl/kit/logger"
)

func CreateLoggingMiddleware(logger *loggerKit.Logger) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				url := httpKit.GetURL(ctx)

				var (
					errorMsg       string
					errorCallStack string
					status         = code.ParseResponseSuccessCode(response).HTTPCode
				)
				if err != nil {
					errorCode := code.ParseErrorCode(err)
					status = errorCode.GeneralCode
					errorMsg = errorCode.Error()
					errorCallStack = fmt.Sprintf("%+v", err)
				}
				loggerWithMetadata := logger.With(
					loggerKit.Int("status", status),
					loggerKit.String("error", errorMsg),
					loggerKit.String("error-call-stack", errorCallStack),
					loggerKit.String("method", httpKit.GetMethod(ctx)),
					loggerKit.String("path", url),
					loggerKit.String("ip", httpKit.GetIP(ctx)),
					loggerKit.String("user-agent", httpKit.GetUserAgent(ctx)),
					loggerKit.String("trace-id", httpKit.GetTraceID(ctx)),
					loggerKit.Int64("request-id", httpKit.GetRequestID(ctx)),
					loggerKit.Duration("latency", time.Since(begin)),
				)

				if status >= http.StatusInternalServerError {
					loggerWithMetadata.Error(url)
				} else {
					loggerWithMetadata.Info(url)
				}
			}(time.Now())

			response, err = e(ctx, request)
			return response, err
		}
	}
}
