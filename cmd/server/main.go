// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"wastetrack/internal/audit"
	"wastetrack/internal/draft"
	drafthandler "wastetrack/internal/draft/handler"
	draftservice "wastetrack/internal/draft/service"
	"wastetrack/internal/platform/config"
	"wastetrack/internal/platform/httpserver"
	"wastetrack/internal/platform/logger"
	"wastetrack/internal/platform/metrics"
	platformredis "wastetrack/internal/platform/redis"
	"wastetrack/internal/refdata"
	httptransport "wastetrack/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store init failed", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	sink, sinkCleanup, err := buildAuditSink(cfg)
	if err != nil {
		log.Error("audit sink init failed", "error", err)
		os.Exit(1)
	}
	defer sinkCleanup()

	publisher := audit.NewPublisher(sink, audit.WithAsync(256), audit.WithLogger(log))
	defer publisher.Close()

	m := metrics.New()
	svc := draftservice.New(store, draft.NewValidator(refdata.Default()),
		draftservice.WithLogger(log),
		draftservice.WithMetrics(m),
		draftservice.WithAuditPublisher(publisher),
	)
	router := httptransport.NewRouter(drafthandler.New(svc, log), log)
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting wastetrack", "addr", cfg.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the declaration store from configuration.
func buildStore(ctx context.Context, cfg config.Server) (draft.Store, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return draft.NewPostgres(pool), pool.Close, nil
	case config.StoreRedis:
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, errors.New("redis store selected but REDIS_URL is not set")
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return draft.NewRedis(client.Client), func() { _ = client.Close() }, nil
	default:
		return draft.NewInMemoryStore(), func() {}, nil
	}
}

// buildAuditSink uses Kafka when brokers are configured, an in-process store
// otherwise.
func buildAuditSink(cfg config.Server) (audit.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewInMemoryStore(), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(audit.KafkaConfig{
		Brokers: strings.Join(cfg.Kafka.Brokers, ","),
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		return nil, nil, err
	}
	return sink, sink.Close, nil
}
