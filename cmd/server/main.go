package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	groupshandler "cayley/internal/groups/handler"
	groupsmetrics "cayley/internal/groups/metrics"
	groupsservice "cayley/internal/groups/service"
	groupsstore "cayley/internal/groups/store"
	"cayley/internal/platform/config"
	"cayley/internal/platform/httpserver"
	"cayley/internal/platform/logger"
	"cayley/internal/platform/metrics"
	"cayley/internal/platform/middleware"
	"cayley/internal/platform/postgres"
	"cayley/internal/platform/redis"
	"cayley/pkg/platform/circuit"
	"cayley/pkg/platform/httputil"
)

// main wires the catalog's dependencies and runs the HTTP server until
// SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	groupsMetrics := groupsmetrics.New()

	backend, health, cleanup, err := openStore(ctx, cfg, groupsMetrics, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := groupsservice.New(backend,
		groupsservice.WithLogger(log),
		groupsservice.WithMetrics(groupsMetrics),
	)

	if cfg.SeedCatalog {
		seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
		created, err := svc.Seed(seedCtx, groupsservice.DefaultCatalog)
		cancel()
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		log.Info("catalog ready", "seeded", created, "store", cfg.StoreBackend)
	}

	router := newRouter(routerDeps{
		cfg:      cfg,
		log:      log,
		metrics:  metrics.New(),
		gatherer: prometheus.DefaultGatherer,
		groups:   groupshandler.New(svc, log),
		health:   health,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting cayley", "addr", cfg.Addr, "store", cfg.StoreBackend, "cache", cfg.Redis.URL != "")
	return httpserver.Run(ctx, srv, cfg.ShutdownTimeout, log)
}

// openStore picks the configured backend and, when REDIS_URL is set, puts
// the read-through cache in front of it.
func openStore(ctx context.Context, cfg config.Server, m *groupsmetrics.Metrics, log *slog.Logger) (groupsstore.Backend, healthFunc, func(), error) {
	var (
		backend groupsstore.Backend
		db      *sql.DB
		checks  []healthFunc
	)
	cleanup := func() {}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		backend = groupsstore.NewInMemory()
	case config.StorePostgres:
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, cleanup, err
		}
		pg := groupsstore.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, cleanup, err
		}
		backend = pg
		checks = append(checks, db.PingContext)
		cleanup = func() { _ = db.Close() }
	default:
		return nil, nil, cleanup, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	if rc != nil {
		breaker := circuit.New("group-cache",
			circuit.WithFailureThreshold(cfg.Redis.BreakerThreshold),
			circuit.WithCooldown(cfg.Redis.BreakerCooldown),
		)
		backend = groupsstore.NewRedisCache(backend, rc.Client, cfg.CacheTTL, m, log, breaker)
		checks = append(checks, rc.Health)
		dbCleanup := cleanup
		cleanup = func() {
			_ = rc.Close()
			dbCleanup()
		}
	}

	health := func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	return backend, health, cleanup, nil
}

type healthFunc func(ctx context.Context) error

type routerDeps struct {
	cfg      config.Server
	log      *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	groups   *groupshandler.Handler
	health   healthFunc
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.log, d.metrics))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.log))
	r.Use(middleware.CORS(d.cfg.CORSOrigins))
	r.Use(middleware.LatencyMiddleware(d.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.health != nil {
			if err := d.health(r.Context()); err != nil {
				d.log.WarnContext(r.Context(), "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if d.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(d.cfg.RequestTimeout))
		}
		r.Use(middleware.ContentTypeJSON)
		d.groups.Register(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found", Message: "route not found"})
	})
	return r
}
