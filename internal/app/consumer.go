package app

import (
	"context"
	"sync"

	"go-assethub/internal/bootstrap"
	"go-assethub/internal/events"
	"go-assethub/internal/messaging/kafka/consumer"

	"go.uber.org/zap"
)

const auditConsumerGroup = "assethub-audit"

// RunConsumer tails the lifecycle topics and writes audit entries until the
// context is cancelled.
func RunConsumer(ctx context.Context, cfg Config, audit bootstrap.AuditLogger) {
	topics := map[string]consumer.Handler{
		events.AssetAssignedTopic:  consumer.AssignmentAuditHandler(audit),
		events.EmployeeJoinedTopic: consumer.TeamAuditHandler(audit),
	}

	var wg sync.WaitGroup
	for topic, handler := range topics {
		handler := handler
		reader := consumer.NewReader(cfg.KafkaBroker, topic, auditConsumerGroup)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer reader.Close()
			consumer.Consume(ctx, reader, handler, zap.L())
		}()
	}
	wg.Wait()
}
