package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

const (
	// Defaults for a fresh HR account, before any package upgrade
	DefaultSubscriptionTier = "basic"
	DefaultPackageLimit     = 5
)

// User covers both account types. HR rows carry the company + subscription
// fields; employee rows carry company_name/hr_email once onboarded to a team.
// Role is fixed at registration and never changed by any normal flow.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	ProfileImage string     `gorm:"type:text"`
	DateOfBirth  *time.Time `gorm:"type:date"`

	CompanyName string `gorm:"type:varchar(255);index"`
	CompanyLogo string `gorm:"type:text"`
	HREmail     string `gorm:"type:varchar(255);index"`

	SubscriptionTier string `gorm:"type:varchar(50)"`
	PackageLimit     int    `gorm:"not null;default:0"`
	CurrentEmployees int    `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
