package kafka

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventModel is the migration shape of the outbox table. The repository
// itself speaks raw SQL so guarded updates can run inside transactions.
type OutboxEventModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"type:varchar(64)"`
	AggregateType string    `gorm:"type:varchar(50);not null"`
	AggregateID   string    `gorm:"type:varchar(255);not null"`
	EventType     string    `gorm:"type:varchar(100);not null"`
	Topic         string    `gorm:"type:varchar(255);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_outbox_status"`
	RetryCount    int       `gorm:"not null;default:0"`
	LastError     string    `gorm:"type:text"`
	NextRetryAt   *time.Time
	SentAt        *time.Time
	CreatedAt     time.Time
}

func (OutboxEventModel) TableName() string { return "outbox_events" }
