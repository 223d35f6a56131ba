package app

import (
	"context"

	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/messaging/kafka/producer"
	"go-assethub/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drives the outbox: it polls pending events and publishes them to
// kafka until the context is cancelled.
func RunWorker(ctx context.Context, cfg Config) error {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, zap.L(), cfg.OutboxPollInterval)
	return nil
}
