package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/towet/payroll-processing-sys/internal/config"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka/producer"
	"github.com/towet/payroll-processing-sys/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if err := cfg.ValidateMessaging(); err != nil {
		return err
	}

	infra, err := Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(
		connection.BrokerAddr(cfg.Kafka.Broker),
		cfg.Database.MaxRetries,
		logger,
	)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(infra.SQLDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.OutboxPollInterval)

	log.Info("worker shutting down")
	return nil
}
