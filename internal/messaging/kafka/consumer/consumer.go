package consumer

import (
	"context"
	"errors"
	"io"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one decoded message. Returning an error logs and skips
// the message; offsets are committed either way, consumers are best effort.
type Handler func(ctx context.Context, msg kafkago.Message) error

func NewReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

// Consume pulls messages until the context is cancelled
func Consume(ctx context.Context, reader *kafkago.Reader, handler Handler, logger *zap.Logger) {
	log := logger.Named("kafka.consumer").With(
		zap.String("topic", reader.Config().Topic),
		zap.String("group_id", reader.Config().GroupID),
	)
	log.Info("consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("consumer stopped")
				return
			}
			log.Error("read message failed", zap.Error(err))
			continue
		}

		if err := handler(ctx, msg); err != nil {
			log.Error("handle message failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
