package assignment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAssigned = "assigned"
	StatusReturned = "returned"
)

// AssignedAsset records one unit held by one employee. It is created only as
// a side effect of approving a request and carries denormalized asset fields
// so the record survives asset deletion.
type AssignedAsset struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AssetName  string    `gorm:"type:varchar(255);not null"`
	AssetImage string    `gorm:"type:text"`
	AssetType  string    `gorm:"type:varchar(20);not null"`

	EmployeeEmail string `gorm:"type:varchar(255);not null;index:idx_assignments_employee"`
	EmployeeName  string `gorm:"type:varchar(255);not null"`
	HREmail       string `gorm:"type:varchar(255);not null;index:idx_assignments_owner"`
	CompanyName   string `gorm:"type:varchar(255);not null"`

	AssignmentDate time.Time  `gorm:"not null"`
	ReturnDate     *time.Time `gorm:"type:timestamptz"`
	Status         string     `gorm:"type:varchar(20);not null;default:'assigned'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
