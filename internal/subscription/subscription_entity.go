package subscription

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusPending   = "pending"
	SessionStatusCompleted = "completed"
)

// Package is one purchasable tier. EmployeeLimit becomes the HR account's
// package_limit once a payment for this tier lands.
type Package struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_package_name"`
	Price         float64   `gorm:"type:numeric(10,2);not null"`
	EmployeeLimit int       `gorm:"not null"`
	Features      []string  `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckoutSession is a short lived handle between picking a package and
// confirming the payment. Completion is a one way flip.
type CheckoutSession struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerEmail string    `gorm:"type:varchar(255);not null;index"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment is the permanent record of a completed checkout
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerEmail string    `gorm:"type:varchar(255);not null;index"`
	PackageName   string    `gorm:"type:varchar(50);not null"`
	Amount        float64   `gorm:"type:numeric(10,2);not null"`
	TransactionID string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_payment_txn"`

	CreatedAt time.Time
}
