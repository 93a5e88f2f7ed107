package main

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/superj80820/tinyurl/domain"
	httpKit "github.com/superj80820/tinyurl/kit/http"
	httpMiddlewareKit "github.com/superj80820/tinyurl/kit/http/middleware"
	"github.com/superj80820/tinyurl/kit/http/transport"
	loggerKit "github.com/superj80820/tinyurl/kit/logger"
	"github.com/superj80820/tinyurl/kit/ratelimit"
	deliveryHTTP "github.com/superj80820/tinyurl/urlshortener/delivery/http"
	"go.opentelemetry.io/otel/trace"
)

type routerConfig struct {
	urlUseCase domain.URLUseCase
	rateLimit  ratelimit.PassFunc
	logger     *loggerKit.Logger
	tracer     trace.Tracer

	trustProxyHeaders bool

	// nil disables /metrics
	metrics endpoint.Middleware
}

func makeTextEndpoint(text string) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return text, nil
	}
}

func createRouter(config routerConfig) http.Handler {
	middlewares := []endpoint.Middleware{
		httpMiddlewareKit.CreateRateLimitMiddleware(config.rateLimit),
	}
	if config.metrics != nil {
		middlewares = append(middlewares, config.metrics)
	}
	customMiddleware := endpoint.Chain(
		httpMiddlewareKit.CreateLoggingMiddleware(config.logger),
		middlewares...,
	)

	var beforeCtxOptions []httpKit.BeforeCtxOption
	if config.trustProxyHeaders {
		beforeCtxOptions = append(beforeCtxOptions, httpKit.TrustProxyHeaders)
	}
	options := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(config.tracer, beforeCtxOptions...)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	}

	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/").Handler(
		httptransport.NewServer(
			makeTextEndpoint("Hello, World!"),
			transport.DecodeEmptyRequest,
			transport.EncodeTextResponse,
			options...,
		))
	r.Methods(http.MethodGet).Path("/health").Handler(
		httptransport.NewServer(
			makeTextEndpoint("OK"),
			transport.DecodeEmptyRequest,
			transport.EncodeOKResponse,
			options...,
		))
	r.Methods(http.MethodGet).Path("/redirect/{token:.*}").Handler(
		httptransport.NewServer(
			customMiddleware(deliveryHTTP.MakeURLGetEndpoint(config.urlUseCase)),
			deliveryHTTP.DecodeURLGetRequest,
			deliveryHTTP.EncodeURLGetResponse,
			options...,
		))
	r.Methods(http.MethodPost).Path("/create").Handler(
		httptransport.NewServer(
			customMiddleware(deliveryHTTP.MakeURLShortenEndpoint(config.urlUseCase)),
			deliveryHTTP.DecodeURLShortenRequest,
			deliveryHTTP.EncodeURLShortenResponse,
			options...,
		))
	if config.metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(r)
}
