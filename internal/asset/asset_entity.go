package asset

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeReturnable    = "Returnable"
	TypeNonReturnable = "Non-Returnable"
)

// Asset is one inventory line owned by an HR account.
// available_quantity is only ever changed through ReserveUnit, ReleaseUnit
// and the administrative Update path; 0 <= available <= product_quantity holds
// at all times.
type Asset struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductName  string    `gorm:"type:varchar(255);not null"`
	ProductImage string    `gorm:"type:text"`
	ProductType  string    `gorm:"type:varchar(20);not null"`

	ProductQuantity   int `gorm:"not null"`
	AvailableQuantity int `gorm:"not null"`

	CompanyName string `gorm:"type:varchar(255);not null;index:idx_assets_company"`
	HREmail     string `gorm:"type:varchar(255);not null;index:idx_assets_owner"`

	DateAdded time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
