package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"pawdesk/internal/platform/config"
	"pawdesk/internal/platform/httpserver"
	"pawdesk/internal/platform/logger"
	"pawdesk/internal/platform/metrics"
	platformredis "pawdesk/internal/platform/redis"
	"pawdesk/internal/printing"
	"pawdesk/internal/supplier"
	httptransport "pawdesk/internal/transport/http"
	"pawdesk/internal/weather"
	audit "pawdesk/pkg/platform/audit"
	kafkapub "pawdesk/pkg/platform/audit/publishers/kafka"
	"pawdesk/pkg/platform/audit/store"
	memorystore "pawdesk/pkg/platform/audit/store/memory"
	postgresstore "pawdesk/pkg/platform/audit/store/postgres"
	"pawdesk/pkg/platform/audit/worker"
	"pawdesk/pkg/platform/circuit"
	authmw "pawdesk/pkg/platform/middleware/auth"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svcMetrics := metrics.New()
	auditMetrics := audit.NewMetrics()

	// Audit pipeline: bounded per-category buffers plus an async persistence
	// fan-out. The buffers are authoritative for diagnostics; the stores are
	// best-effort history.
	registry := audit.NewRegistry(cfg.AuditCapacity)
	persistQueue := make(chan audit.Entry, cfg.AuditQueueSize)

	stores := []store.Store{}
	var healthChecks []httptransport.HealthCheck

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		pgStore := postgresstore.New(db)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Error("failed to migrate audit schema", "error", err.Error())
			os.Exit(1)
		}
		stores = append(stores, pgStore)
		healthChecks = append(healthChecks, httptransport.HealthCheck{
			Name:  "postgres",
			Check: func(r *http.Request) error { return db.PingContext(r.Context()) },
		})
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := kafkapub.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("failed to connect kafka audit publisher", "error", err.Error())
			os.Exit(1)
		}
		defer pub.Close()
		stores = append(stores, pub)
	}

	var auditStore store.Store
	switch len(stores) {
	case 0:
		auditStore = memorystore.NewInMemoryStore()
	case 1:
		auditStore = stores[0]
	default:
		auditStore = store.NewFanout(stores...)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthChecks = append(healthChecks, httptransport.HealthCheck{
			Name:  "redis",
			Check: func(r *http.Request) error { return redisClient.Health(r.Context()) },
		})
	}

	recorder := func(category audit.Category) *audit.Recorder {
		return audit.NewRecorder(category, registry.Manager(category), log,
			audit.WithAuditSink(audit.NewSlogAudit(log)),
			audit.WithPersistQueue(persistQueue),
			audit.WithMetrics(auditMetrics),
		)
	}

	supplierSvc := supplier.NewService(
		supplier.NewHTTPClient(cfg.SupplierBaseURL),
		circuit.New("supplier-api"),
		recorder(audit.CategorySupplier),
		svcMetrics,
	)

	var weatherCache weather.Cache
	if redisClient != nil {
		weatherCache = weather.NewRedisCache(redisClient, cfg.WeatherCacheTTL)
	}
	weatherSvc := weather.NewService(
		weather.NewHTTPProvider(cfg.WeatherBaseURL),
		weatherCache,
		recorder(audit.CategoryWeather),
		svcMetrics,
	)

	printingSvc := printing.NewService(
		printing.NewTextRenderer(),
		recorder(audit.CategoryPrinting),
		svcMetrics,
	)

	handler := httptransport.NewHandler(
		log,
		registry,
		auditStore,
		auditMetrics,
		httptransport.Services{
			Supplier: supplierSvc,
			Weather:  weatherSvc,
			Printing: printingSvc,
		},
		cfg.AuditRecentLimit,
		healthChecks...,
	)
	router := httptransport.NewRouter(handler, authmw.NewHMACValidator(cfg.JWTSigningKey), cfg.AdminToken)

	srv := httpserver.New(cfg.Addr, router)
	auditWorker := worker.New(auditStore, persistQueue, log, auditMetrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting pawdesk", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := auditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("pawdesk stopped")
}
