package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelshop/backend/config"
	"github.com/pixelshop/backend/internal/controller/restapi"
	"github.com/pixelshop/backend/internal/controller/worker/outbox"
	"github.com/pixelshop/backend/internal/infrastructure/delivery"
	infrakafka "github.com/pixelshop/backend/internal/infrastructure/kafka"
	"github.com/pixelshop/backend/internal/infrastructure/payment"
	"github.com/pixelshop/backend/internal/infrastructure/processor"
	"github.com/pixelshop/backend/internal/repo/persistent"
	"github.com/pixelshop/backend/internal/usecase/catalog"
	"github.com/pixelshop/backend/internal/usecase/order"
	"github.com/pixelshop/backend/pkg/httpserver"
	"github.com/pixelshop/backend/pkg/kafka/producer"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/pixelshop/backend/pkg/postgres"
	"github.com/pixelshop/backend/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Infrastructure

	gateway := payment.New(
		cfg.Razorpay.Endpoint,
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		cfg.Razorpay.Timeout,
	)
	fetcher := delivery.New(cfg.Media.Endpoint, cfg.Media.FetchTimeout)

	// Use-Case

	// catalog use-case
	catalogUseCase := catalog.New(
		persistent.NewProductRepo(pg),
		fetcher,
		processor.New(),
		cfg.Media.StampText,
		l,
	)

	// order use-case
	orderUseCase := order.New(
		persistent.NewOrderRepo(pg),
		persistent.NewProductRepo(pg),
		persistent.NewOrderOutboxRepo(pg),
		persistent.NewAssetRepo(s3c, cfg.S3.Bucket),
		pg,
		catalogUseCase,
		gateway,
		fetcher,
		cfg.Razorpay.Currency,
		l,
	)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		orderUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, orderUseCase, catalogUseCase, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}
}
