package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/superj80820/tinyurl/kit/code"
	utilKit "github.com/superj80820/tinyurl/kit/util"
	"go.opentelemetry.io/otel/trace"
)

type ctxKeyType int

const (
	_CTX_IP_KEY ctxKeyType = iota
	_CTX_HOST
	_CTX_URL_PATH
	_CTX_METHOD
	_CTX_USER_AGENT
	_CTX_TRACE_ID
	_CTX_REQUEST_ID
)

// ReadUserIP returns the socket peer. With trustProxyHeaders, X-Real-Ip and then the first hop of
// X-Forwarded-For take precedence, only enable it behind a proxy that overwrites them.
func ReadUserIP(r *http.Request, trustProxyHeaders bool) string {
	var ipAddress string
	if trustProxyHeaders {
		ipAddress = strings.TrimSpace(r.Header.Get("X-Real-Ip"))
		if ipAddress == "" {
			ipAddress = strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
		}
	}
	if ipAddress == "" {
		ipAddress = r.RemoteAddr
	}
	if host, _, err := net.SplitHostPort(ipAddress); err == nil {
		return host
	}
	return ipAddress
}

type beforeCtxConfig struct {
	trustProxyHeaders bool
}

type BeforeCtxOption func(*beforeCtxConfig)

func TrustProxyHeaders(c *beforeCtxConfig) {
	c.trustProxyHeaders = true
}

func CustomBeforeCtx(tracer trace.Tracer, options ...BeforeCtxOption) func(ctx context.Context, r *http.Request) context.Context {
	var config beforeCtxConfig
	for _, option := range options {
		option(&config)
	}

	return func(ctx context.Context, r *http.Request) context.Context {
		ctx = context.WithValue(ctx, _CTX_HOST, r.Host)
		ctx = context.WithValue(ctx, _CTX_URL_PATH, r.URL.Path)
		ctx = context.WithValue(ctx, _CTX_METHOD, r.Method)
		ctx = context.WithValue(ctx, _CTX_USER_AGENT, r.UserAgent())
		ctx = AddIP(ctx, ReadUserIP(r, config.trustProxyHeaders))
		ctx = AddRequestID(ctx)

		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		ctx = AddTraceID(ctx, span.SpanContext().TraceID().String())

		return ctx
	}
}

func CustomAfterCtx(ctx context.Context, w http.ResponseWriter) context.Context {
	w.Header().Add("X-B3-TraceId", GetTraceID(ctx))
	return ctx
}

func getString(ctx context.Context, key ctxKeyType) string {
	val, _ := ctx.Value(key).(string)
	return val
}

func GetTraceID(ctx context.Context) string {
	return getString(ctx, _CTX_TRACE_ID)
}

func AddTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, _CTX_TRACE_ID, traceID)
}

func GetIP(ctx context.Context) string {
	return getString(ctx, _CTX_IP_KEY)
}

func AddIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, _CTX_IP_KEY, ip)
}

func GetURL(ctx context.Context) string {
	return getString(ctx, _CTX_URL_PATH)
}

func GetMethod(ctx context.Context) string {
	return getString(ctx, _CTX_METHOD)
}

func GetUserAgent(ctx context.Context) string {
	return getString(ctx, _CTX_USER_AGENT)
}

func AddRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, _CTX_REQUEST_ID, utilKit.GetSnowflakeIDInt64())
}

func GetRequestID(ctx context.Context) int64 {
	val, _ := ctx.Value(_CTX_REQUEST_ID).(int64)
	return val
}

func EncodeHTTPErrorResponse() func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if err == nil {
			panic("encodeError with nil error")
		}

		CustomAfterCtx(ctx, w)

		errorCode := code.CreateHTTPError(code.ParseErrorCode(err))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(errorCode.HTTPCode)
		json.NewEncoder(w).Encode(errorCode)
	}
}
