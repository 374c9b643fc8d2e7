package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/stockkeeper/internal/client/cache"
	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/stockkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/stockkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/stockkeeper/internal/client/services"
	"github.com/dmitrijs2005/stockkeeper/internal/client/session"
	"github.com/dmitrijs2005/stockkeeper/internal/client/storage"
	"github.com/dmitrijs2005/stockkeeper/internal/client/transport"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

// Build wires the whole client from c: the local database, both credential
// tiers, the response cache, metrics, tracing, the executor and the gateway. The
// returned close function releases everything Build opened.
func Build(ctx context.Context, c *config.Config, log logging.Logger) (*App, func(), error) {
	if err := filex.EnsureParentDir(c.StoragePath); err != nil {
		return nil, nil, err
	}
	db, err := storage.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	closers := []func(){func() { _ = db.Close() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	sess := newSession(db, log)

	respCache, closeCache, err := newCache(ctx, c, log)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, closeCache)

	reg, m := metrics.NewRegistry()
	if c.MetricsAddr != "" {
		srv := &http.Server{Addr: c.MetricsAddr, Handler: metrics.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "metrics server stopped", "error", err)
			}
		}()
		closers = append(closers, func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		})
		log.Info(ctx, "serving metrics", "addr", c.MetricsAddr)
	}

	tp, err := telemetry.Install(ctx, telemetry.Config{
		ServiceVersion: buildinfo.Version,
		Endpoint:       c.TraceEndpoint,
		Insecure:       c.TraceInsecure,
		SampleRate:     c.TraceSampleRate,
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(sctx)
	})
	if c.TraceEndpoint != "" {
		log.Info(ctx, "exporting traces", "endpoint", c.TraceEndpoint)
	}

	exec := transport.NewExecutor(c.APIBaseURL,
		transport.WithTracing(tp.Tracer, tp.Propagator),
		transport.WithTimeouts(c.RequestTimeout, c.UploadTimeout),
		transport.WithLogger(log),
		transport.WithMetrics(m),
	)

	boundary := NewLoginBoundary()
	gw := gateway.New(exec, sess,
		gateway.WithCache(respCache),
		gateway.WithNavigator(boundary),
		gateway.WithLogger(log),
		gateway.WithMetrics(m),
		gateway.WithRedirectDelay(c.RedirectDelay),
	)

	app := NewApp(c, Deps{
		Gateway:   gw,
		Auth:      services.NewAuthService(gw, log),
		Dashboard: services.NewDashboardService(gw),
		Scan:      services.NewScanService(gw),
		Boundary:  boundary,
		Logger:    log,
	}, os.Stdin, os.Stdout)

	return app, closeAll, nil
}

// newSession puts the durable tier in SQLite and the session tier in memory,
// so only "remember me" logins outlive the process.
func newSession(db *sql.DB, log logging.Logger) *session.Context {
	durable := metadata.NewSQLiteStore(db)
	return session.NewContext(session.NewStore(durable, metadata.NewMemoryStore(), log))
}

func newCache(ctx context.Context, c *config.Config, log logging.Logger) (cache.Cache, func(), error) {
	switch c.CacheBackend {
	case config.CacheNone:
		return cache.None{}, func() {}, nil
	case config.CacheRedis:
		rdb := cache.NewRedisClient(c.RedisAddr)
		rc := cache.NewRedis(rdb, cache.DefaultRedisPrefix, c.CacheDuration, log)
		if err := rc.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", c.RedisAddr, err)
		}
		return rc, closeRedis(rdb), nil
	default:
		return cache.NewMemory(c.CacheDuration), func() {}, nil
	}
}

func closeRedis(rdb *redis.Client) func() {
	return func() { _ = rdb.Close() }
}
