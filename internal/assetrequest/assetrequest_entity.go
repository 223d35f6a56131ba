package assetrequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AssetRequest is one employee's ask for one unit of an asset. The status
// moves pending -> approved or pending -> rejected exactly once; approved and
// rejected are terminal. Asset fields are denormalized at submission time so
// the history stays readable after the asset changes or disappears.
type AssetRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AssetName  string    `gorm:"type:varchar(255);not null"`
	AssetImage string    `gorm:"type:text"`
	AssetType  string    `gorm:"type:varchar(20);not null"`

	RequesterEmail string `gorm:"type:varchar(255);not null;index:idx_requests_requester"`
	RequesterName  string `gorm:"type:varchar(255);not null"`
	HREmail        string `gorm:"type:varchar(255);not null;index:idx_requests_owner"`
	CompanyName    string `gorm:"type:varchar(255);not null"`

	Note          string `gorm:"type:text;not null"`
	RequestStatus string `gorm:"type:varchar(20);not null;default:'pending'"`

	RequestDate  time.Time  `gorm:"not null"`
	ApprovalDate *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
