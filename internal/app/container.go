package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"kargo-booking/internal/config"
	"kargo-booking/internal/draft"
	"kargo-booking/internal/gateway/geocode"
	"kargo-booking/internal/http/handlers"
	"kargo-booking/internal/http/middleware/ratelimit"
	"kargo-booking/internal/http/router"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/order"
	"kargo-booking/internal/repository"
	"kargo-booking/internal/session"
	"kargo-booking/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect    func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	redisConnect func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error)
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:    connectDbWithRetry,
		redisConnect: connectRedisWithRetry,
		logFatalf:    log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisConnect sets the draft store connection function
func (b *ContainerBuilder) WithRedisConnect(
	fn func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error),
) *ContainerBuilder {
	if fn != nil {
		b.redisConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.redisConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		session.NewContextSession,
		func(cfg *config.Config) time.Duration { return cfg.Booking.OperationTimeout },
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
	redisConnect func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	providerRedis := func(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
		return redisConnect(ctx, cfg.Redis, 10, time.Second)
	}
	return provideAll(container, providerDB, providerRedis)
}

type assemblerIn struct {
	dig.In
	Store    *draft.Store
	Logger   logx.Logger
	Rejected prometheus.Counter `name:"draft_merge_rejected_total"`
}

type finalizerIn struct {
	dig.In
	Drafts    *draft.Store
	Orders    order.OrderRepository
	Session   session.Session
	Logger    logx.Logger
	Submitted prometheus.Counter `name:"orders_submitted_total"`
	Timeout   time.Duration
}

type geocodeIn struct {
	dig.In
	Gateway *geocode.HTTPGateway
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
	Config  *config.Config
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(client *redis.Client, cfg *config.Config) draft.KV {
			return draft.NewRedisKV(client, cfg.Redis.DraftTTL)
		},
		draft.NewStore,
		func(in assemblerIn) *draft.Assembler {
			return draft.NewAssembler(in.Store, in.Logger, in.Rejected)
		},
		func(pool *pgxpool.Pool) order.OrderRepository {
			return repository.NewOrderRepo(pool)
		},
		func(in finalizerIn) *order.Finalizer {
			return order.NewFinalizer(in.Drafts, in.Orders, in.Session, in.Logger, in.Submitted, in.Timeout)
		},
		order.NewQueries,
		order.NewProcessor,
		func(cfg *config.Config) *geocode.HTTPGateway {
			return geocode.NewHTTPGateway(&http.Client{Timeout: 10 * time.Second}, cfg.Geocode.BaseURL)
		},
		func(in geocodeIn) *geocode.RetryingGateway {
			return geocode.NewRetryingGateway(in.Gateway, in.Logger, in.Retries, geocode.RetryConfig{
				MaxAttempts: in.Config.Geocode.MaxAttempts,
				BaseDelay:   in.Config.Geocode.BaseDelay,
				MaxDelay:    in.Config.Geocode.MaxDelay,
			})
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	routerProvider := func(
		base *handlers.Handlers,
		dh *handlers.DraftHandler,
		oh *handlers.OrderHandler,
		ah *handlers.AddressHandler,
		rl *ratelimit.Middleware,
		logger logx.Logger,
	) http.Handler {
		return router.New(router.Deps{
			Base:      base,
			Draft:     dh,
			Orders:    oh,
			Address:   ah,
			RateLimit: rl,
			Logger:    logger,
		})
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDraftUsecase,
		handlers.NewDraftHandler,
		handlers.NewOrderSubmitter,
		handlers.NewOrderReader,
		handlers.NewOrderHandler,
		handlers.NewAddressSearcher,
		handlers.NewAddressHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}

func registerKafka(container *dig.Container) error {
	consumerProvider := func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
		return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
	}
	return provideAll(container,
		makeStatusKafka,
		consumerProvider,
	)
}
