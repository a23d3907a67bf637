// Command almapacd serves the almapac API behind the access gateway.
//
// Configuration is read from the environment (see internal/config):
//
//	ALMAPAC_SECRET   server secret, required
//	REDIS_ADDR       session store, default localhost:6379
//	POSTGRES_DSN     relational database, required
//	HTTP_ADDR        listen address, default :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/internal/config"
	"github.com/AdolfoCB/almapac-gateway/internal/db"
	"github.com/AdolfoCB/almapac-gateway/internal/server"
	"github.com/AdolfoCB/almapac-gateway/internal/telemetry"
	"github.com/AdolfoCB/almapac-gateway/metrics/export/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "almapacd:", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal", "event", "almapacd_fatal", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "shutdown", "event", "almapacd_shutdown")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) (err error) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	pg, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()

	builder := gateway.New().
		WithConfig(cfg.Gateway()).
		WithRedis(rdb).
		WithLogger(logger)
	if cfg.EnableAudit {
		builder = builder.WithAuditSink(gateway.NewSlogSink(logger))
	}
	gw, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}
	defer gw.Close()

	if _, err := gw.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	opts := server.Options{
		Gateway: gw,
		Barcos:  db.NewBarcoRepository(pg.DB),
		Logger:  logger,
	}
	if cfg.EnableMetrics {
		opts.Metrics = prometheus.NewPrometheusExporter(gw).Handler()

		if cfg.MetricsLogInterval > 0 {
			tel, telErr := telemetry.Start(gw, logger, cfg.MetricsLogInterval)
			if telErr != nil {
				return fmt.Errorf("start telemetry: %w", telErr)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err = errors.Join(err, tel.Shutdown(shutdownCtx))
			}()
		}
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	return server.ListenAndServe(ctx, cfg.HTTPAddr, srv, logger, 10*time.Second)
}
