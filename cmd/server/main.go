package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"taxgate/internal/audit"
	"taxgate/internal/auth"
	"taxgate/internal/auth/local"
	"taxgate/internal/obligations"
	obligationshandler "taxgate/internal/obligations/handler"
	"taxgate/internal/platform/config"
	"taxgate/internal/platform/httpserver"
	"taxgate/internal/platform/logger"
	"taxgate/internal/platform/metrics"
	"taxgate/internal/platform/postgres"
	platformredis "taxgate/internal/platform/redis"
	"taxgate/internal/returns"
	returnshandler "taxgate/internal/returns/handler"
	"taxgate/internal/returns/store"
	httptransport "taxgate/internal/transport/http"
)

// returnsStore is what both backing stores provide: persistence for the
// returns service and period keys for the obligations service.
type returnsStore interface {
	returns.Store
	obligations.PeriodSource
}

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var backingStore returnsStore = store.NewInMemory()
	db, err := postgres.Open(cfg.DB)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		pg := store.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("failed to migrate schema", "error", err.Error())
			os.Exit(1)
		}
		backingStore = pg
		log.Info("using postgres return store")
	} else {
		log.Info("no DATABASE_URL set, using in-memory return store")
	}

	var obligationCache obligations.Cache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		obligationCache = obligations.NewRedisCache(redisClient.Client)
		log.Info("obligation caching enabled")
	}

	var auditSink audit.Sink = audit.NewMemorySink()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.Kafka)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()
		auditSink = kafkaSink
		log.Info("audit events published to kafka", "topic", cfg.Kafka.Topic)
	}
	auditPublisher := audit.NewPublisher(1024)
	auditWorker := audit.NewWorker(auditSink, auditPublisher.Inbox(), log)

	var authorizer auth.Authorizer
	if cfg.Auth.BaseURL == "" {
		authorizer = local.New(cfg.Auth.DevSigningKey)
		log.Warn("AUTH_BASE_URL not set, using in-process development authorizer")
	} else {
		authorizer = auth.NewClient(cfg.Auth.BaseURL)
	}
	gate := auth.NewGate(authorizer, auth.PolicyFromConfig(cfg.Auth), m)

	returnsService := returns.NewService(backingStore, auditPublisher, m)
	obligationsService := obligations.NewService(backingStore, obligationCache)

	router := httptransport.NewRouter(
		returnshandler.New(returnsService, gate, log, m),
		obligationshandler.New(obligationsService, gate, log, m),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting taxgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return auditWorker.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
