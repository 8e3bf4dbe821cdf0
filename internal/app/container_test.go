package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"kargo-booking/internal/config"
	"kargo-booking/internal/http/handlers"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/session"
	"kargo-booking/internal/transport/kafka"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:      8080,
		Redis:     config.DefaultRedis(),
		Kafka:     config.Kafka{},
		Geocode:   config.DefaultGeocode(),
		RateLimit: config.DefaultRateLimit(),
		Booking:   config.DefaultBooking(),
	}
}

func setupTestContainer(t *testing.T) *dig.Container {
	t.Helper()

	c := dig.New()

	providers := []struct {
		name     string
		provider any
	}{
		{"context", func() context.Context { return context.Background() }},
		{"logger", func() logx.Logger { return logx.Nop() }},
		{"config", func() *config.Config { return testConfig() }},
		{"session", session.NewContextSession},
		{"timeout", func() time.Duration { return time.Second }},
		{"pgxpool", func() *pgxpool.Pool { return &pgxpool.Pool{} }},
		{"redis", func() *redis.Client { return redis.NewClient(&redis.Options{}) }},
	}

	for _, p := range providers {
		err := c.Provide(p.provider)
		require.NoErrorf(t, err, "provide %s", p.name)
	}

	require.NoError(t, registerMetrics(c))
	require.NoError(t, registerService(c))
	require.NoError(t, registerHTTP(c))
	require.NoError(t, registerKafka(c))

	return c
}

func verifyServer(t *testing.T, srv *http.Server) {
	t.Helper()

	require.NotNil(t, srv, "http.Server is nil")
	require.Equal(t, ":8080", srv.Addr)
	require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
	require.Greater(t, srv.ReadTimeout, time.Duration(0))
	require.Greater(t, srv.WriteTimeout, time.Duration(0))
	require.Greater(t, srv.IdleTimeout, time.Duration(0))
}

func TestRegisterServiceAndHTTP_ProvidesHttpServerAndHandlers(t *testing.T) {
	c := setupTestContainer(t)

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		draftHandler *handlers.DraftHandler,
		orderHandler *handlers.OrderHandler,
		addressHandler *handlers.AddressHandler,
	) {
		verifyServer(t, srv)
		require.NotNil(t, base)
		require.NotNil(t, draftHandler)
		require.NotNil(t, orderHandler)
		require.NotNil(t, addressHandler)
	})
	require.NoError(t, err)
}

func TestRegisterKafka_NilConsumerWhenUnconfigured(t *testing.T) {
	c := setupTestContainer(t)

	err := c.Invoke(func(consumer *kafka.Consumer) {
		require.Nil(t, consumer)
	})
	require.NoError(t, err)
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestRegisterCore_ProvidesDependencies(t *testing.T) {
	resetFlags(t)

	c := dig.New()
	ctx := context.Background()

	err := registerCore(c, ctx)
	require.NoError(t, err)

	err = c.Invoke(func(
		gotCtx context.Context,
		logger logx.Logger,
		cfg *config.Config,
		sess session.Session,
		timeout time.Duration,
	) {
		require.Equal(t, ctx, gotCtx)
		require.NotNil(t, logger)
		require.NotNil(t, cfg)
		require.NotNil(t, sess)
		require.Equal(t, cfg.Booking.OperationTimeout, timeout)
	})
	require.NoError(t, err)
}

func TestRegisterDb_UsesConnectorsAndProvidesClients(t *testing.T) {
	t.Parallel()

	c := dig.New()
	ctx := context.Background()

	cfg := testConfig()
	cfg.DB = config.DB{Host: "localhost", Port: "5432", User: "user", Pass: "pass", Name: "db"}

	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))

	stubPool := &pgxpool.Pool{}
	stubRedis := redis.NewClient(&redis.Options{})

	stubDbConnect := func(
		gotCtx context.Context,
		dsn string,
		retries int,
		delay time.Duration,
	) (*pgxpool.Pool, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}
	stubRedisConnect := func(
		gotCtx context.Context,
		gotCfg config.Redis,
		retries int,
		delay time.Duration,
	) (*redis.Client, error) {
		require.Equal(t, ctx, gotCtx)
		require.Equal(t, cfg.Redis, gotCfg)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubRedis, nil
	}

	err := registerDb(c, stubDbConnect, stubRedisConnect)
	require.NoError(t, err)

	err = c.Invoke(func(pool *pgxpool.Pool, client *redis.Client) {
		require.Equal(t, stubPool, pool)
		require.Equal(t, stubRedis, client)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_Success(t *testing.T) {
	resetFlags(t)

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		}).
		WithRedisConnect(func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error) {
			return redis.NewClient(&redis.Options{}), nil
		})

	c, err := builder.build(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)

	err = c.Invoke(func(pool *pgxpool.Pool, client *redis.Client) {
		require.NotNil(t, pool)
		require.NotNil(t, client)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_DBError(t *testing.T) {
	resetFlags(t)

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return nil, fmt.Errorf("db failed")
		}).
		WithRedisConnect(func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error) {
			return redis.NewClient(&redis.Options{}), nil
		})

	c, err := builder.build(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)

	err = c.Invoke(func(pool *pgxpool.Pool) {
		_ = pool
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
}

func TestContainerBuilder_MustBuild_LogsFatalOnError(t *testing.T) {
	resetFlags(t)

	ctx := context.Background()

	builder := NewContainerBuilder().
		WithDBConnect(func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error) {
			return &pgxpool.Pool{}, nil
		}).
		WithRedisConnect(func(context.Context, config.Redis, int, time.Duration) (*redis.Client, error) {
			return redis.NewClient(&redis.Options{}), nil
		}).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		})

	c := builder.MustBuild(ctx)
	require.NotNil(t, c)
}
