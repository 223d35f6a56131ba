package tenant

import "gorm.io/gorm"

// CompanyScope filters rows to one company. Every list query that an
// employee can reach must go through this or OwnerScope, never a bare Where.
func CompanyScope(companyName string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_name = ?", companyName)
	}
}

// OwnerScope filters rows to the HR account that owns them.
func OwnerScope(hrEmail string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hr_email = ?", hrEmail)
	}
}
