package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"cdbl-lms/internal/config"
	"cdbl-lms/internal/events"
	"cdbl-lms/internal/messaging/kafka/consumer"
	"cdbl-lms/internal/notification"
	"cdbl-lms/internal/user"
)

// RunConsumer turns leave lifecycle events into inbox notifications until
// SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}

	in, err := Connect(cfg, logger, false)
	if err != nil {
		return err
	}
	defer in.Close()

	notificationService := notification.NewService(
		notification.NewRepository(in.GormDB),
		notification.NewUserDirectory(user.NewRepository(in.GormDB)),
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.LeaveLifecycleTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLeaveLifecycle(ctx, reader, notificationService, logger)

	log.Info("consumer shut down")
	return nil
}
