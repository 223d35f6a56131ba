package consumer

import (
	"context"
	"encoding/json"

	"go-assethub/internal/bootstrap"
	"go-assethub/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

// AssignmentAuditHandler turns assignment lifecycle events into audit entries
func AssignmentAuditHandler(audit bootstrap.AuditLogger) Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var e events.AssetAssignedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return err
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  e.EventType,
			Message: "asset assigned to employee",
			Meta: map[string]any{
				"assignment_id":  e.AssignmentID,
				"asset_id":       e.AssetID,
				"asset_name":     e.AssetName,
				"employee_email": e.EmployeeEmail,
				"hr_email":       e.HREmail,
				"company_name":   e.CompanyName,
				"occurred_at":    e.OccurredAt,
			},
		})
		return nil
	}
}

// TeamAuditHandler turns team membership events into audit entries
func TeamAuditHandler(audit bootstrap.AuditLogger) Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		var e events.EmployeeJoinedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return err
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  e.EventType,
			Message: "employee joined company",
			Meta: map[string]any{
				"employee_email": e.EmployeeEmail,
				"hr_email":       e.HREmail,
				"company_name":   e.CompanyName,
				"occurred_at":    e.OccurredAt,
			},
		})
		return nil
	}
}
