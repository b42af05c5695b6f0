package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cdbl-lms/internal/config"
	"cdbl-lms/internal/messaging/kafka"
	"cdbl-lms/internal/messaging/kafka/producer"
	"cdbl-lms/internal/shared/connection"
)

// RunWorker relays outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}

	in, err := Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer in.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(in.SQLDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)

	log.Info("worker shut down")
	return nil
}
