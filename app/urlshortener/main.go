package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/domain"
	cacheKit "github.com/superj80820/tinyurl/kit/cache"
	memoryCacheKit "github.com/superj80820/tinyurl/kit/cache/memory"
	redisCacheKit "github.com/superj80820/tinyurl/kit/cache/redis"
	httpMiddlewareKit "github.com/superj80820/tinyurl/kit/http/middleware"
	loggerKit "github.com/superj80820/tinyurl/kit/logger"
	ormKit "github.com/superj80820/tinyurl/kit/orm"
	memoryRateLimit "github.com/superj80820/tinyurl/kit/ratelimit/memory"
	traceKit "github.com/superj80820/tinyurl/kit/trace"
	utilKit "github.com/superj80820/tinyurl/kit/util"
	urlORMRepo "github.com/superj80820/tinyurl/urlshortener/repository/url/orm"
	"github.com/superj80820/tinyurl/urlshortener/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	SYSTEM_NAME     = "system"
	SERVICE_NAME    = "tinyurl"
	SERVICE_VERSION = "0.1.0"
)

func createDB(dbType string) (*ormKit.DB, error) {
	switch dbType {
	case "postgres":
		return ormKit.CreateDB(ormKit.UsePostgres(utilKit.GetRequireEnvString("DATABASE_URL")))
	case "mysql":
		return ormKit.CreateDB(ormKit.UseMySQL(utilKit.GetRequireEnvString("DATABASE_URL")))
	case "sqlite":
		db, err := ormKit.CreateDB(ormKit.UseSQLite(utilKit.GetEnvString("SQLITE_FILE", "tinyurl.db")), ormKit.WithPool(1, 1, 0))
		if err != nil {
			return nil, err
		}
		if err := urlORMRepo.AutoMigrate(db); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, errors.Errorf("unknown db type: %s", dbType)
	}
}

// createCacheStore falls back to an in-process store when no redis host is configured.
func createCacheStore(logger *loggerKit.Logger) (cacheKit.Store, func() error, error) {
	redisHost := utilKit.GetEnvString("REDIS_HOST", "")
	if redisHost == "" {
		logger.Warn("REDIS_HOST is empty, use in-process cache")
		return memoryCacheKit.CreateCache(), func() error { return nil }, nil
	}

	options := []redisCacheKit.Option{
		redisCacheKit.WithPoolSize(utilKit.GetEnvInt("REDIS_POOL_SIZE", 10)),
	}
	if utilKit.GetEnvBool("IS_TLS", false) {
		options = append(options, redisCacheKit.UseTLS)
	}
	redisCache, err := redisCacheKit.CreateCache(
		redisHost,
		utilKit.GetEnvString("REDIS_PASSWORD", ""),
		utilKit.GetEnvInt("REDIS_DB", 0),
		options...,
	)
	if err != nil {
		return nil, nil, err
	}
	return redisCache, redisCache.Close, nil
}

func main() {
	utilKit.LoadEnvFile(".env")

	var (
		enableTracer = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env          = utilKit.GetEnvString("ENV", "development")
		port         = utilKit.GetEnvInt("PORT", 3000)
		dbType       = utilKit.GetEnvString("DB_TYPE", "postgres")
		logPath      = utilKit.GetEnvString("LOG_PATH", "./go.log")

		trustProxyHeaders = utilKit.GetEnvBool("TRUST_PROXY_HEADERS", false)

		rateLimitMaxRequests = utilKit.GetEnvInt("RATE_LIMIT_MAX_REQUESTS", domain.RateLimitMaxRequests)
		rateLimitWindow      = utilKit.GetEnvSeconds("RATE_LIMIT_WINDOW_SECONDS", domain.RateLimitWindow)
		rateLimitSweep       = utilKit.GetEnvSeconds("RATE_LIMIT_SWEEP_SECONDS", 5*time.Minute)
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger(logPath, logLevel, loggerKit.WithRotateLog(100, 3, 28))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := createDB(dbType)
	if err != nil {
		logger.Fatal(fmt.Sprintf("create db failed, error: %+v", err))
	}
	defer db.Close()

	cacheStore, closeCacheStore, err := createCacheStore(logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("create cache failed, error: %+v", err))
	}
	defer closeCacheStore()

	cacheOptions := []cacheKit.Option{cacheKit.WithLogger(logger)}
	var metrics endpoint.Middleware
	if enableMetric {
		cacheOptions = append(cacheOptions, cacheKit.WithLatencyObserver(cacheKit.CreateMetricsObserver(SYSTEM_NAME, SERVICE_NAME)))
		metrics = httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME)
	}
	urlCache := cacheKit.CreateHandler[string](cacheStore, cacheOptions...)

	rateLimit := memoryRateLimit.CreateSlidingWindowRateLimit(
		rateLimitMaxRequests,
		rateLimitWindow,
		memoryRateLimit.WithSweepEvery(rateLimitSweep),
	)

	var tracer trace.Tracer
	if enableTracer {
		var shutdownTracer traceKit.ShutdownFunc
		tracer, shutdownTracer, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME, SERVICE_VERSION)
		if err != nil {
			logger.Fatal(fmt.Sprintf("create tracer failed, error: %+v", err))
		}
		defer shutdownTracer(context.Background())
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	urlUseCase := usecase.CreateURLUseCase(urlORMRepo.CreateURLRepo(db), urlCache, logger)

	httpSrv := http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: createRouter(routerConfig{
			urlUseCase: urlUseCase,
			rateLimit:  rateLimit.Pass,
			logger:     logger,
			tracer:     tracer,
			metrics:    metrics,

			trustProxyHeaders: trustProxyHeaders,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g := new(run.Group)
	{
		g.Add(func() error {
			logger.Info(fmt.Sprintf("listen on %s", httpSrv.Addr))
			return httpSrv.ListenAndServe()
		}, func(err error) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(ctx); err != nil {
				logger.Error("shutdown http server failed", loggerKit.Error(err))
			}
		})
	}
	{
		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return rateLimit.Run(ctx)
		}, func(error) {
			cancel()
		})
	}
	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	var signalErr run.SignalError
	if err := g.Run(); errors.As(err, &signalErr) || errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped", loggerKit.String("reason", err.Error()))
	} else if err != nil {
		logger.Error("server stopped", loggerKit.Error(err))
	}
}
