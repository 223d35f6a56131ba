package user

import (
	"context"
	"database/sql"

	"go-assethub/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateName(ctx context.Context, email, name string) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindEmployeesByHR(ctx context.Context, hrEmail string) ([]User, error)
	FindByCompany(ctx context.Context, companyName string) ([]User, error)
	AssignCompany(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error
	ClearCompany(ctx context.Context, employeeEmail string) error
	IncrementEmployeeCountIfBelowLimit(ctx context.Context, hrEmail string) (bool, error)
	DecrementEmployeeCount(ctx context.Context, hrEmail string) error
	UpdateSubscription(ctx context.Context, hrEmail, tier string, limit int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execer routes guarded single-statement updates through the surrounding
// transaction when one is open.
func (r *repository) execer() (execer, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) UpdateName(ctx context.Context, email, name string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		Update("name", name).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindEmployeesByHR(ctx context.Context, hrEmail string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.OwnerScope(hrEmail)).
		Where("role = ?", RoleEmployee).
		Order("created_at").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByCompany(ctx context.Context, companyName string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyName)).
		Order("created_at").
		Find(&users).Error
	return users, err
}

// AssignCompany and ClearCompany go through the execer so team changes land
// in the same transaction as the seat counter update.
func (r *repository) AssignCompany(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error {
	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		UPDATE users
		SET company_name = $1, company_logo = $2, hr_email = $3, updated_at = now()
		WHERE email = $4 AND role = $5
	`, companyName, companyLogo, hrEmail, employeeEmail, RoleEmployee)
	return err
}

func (r *repository) ClearCompany(ctx context.Context, employeeEmail string) error {
	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		UPDATE users
		SET company_name = '', company_logo = '', hr_email = '', updated_at = now()
		WHERE email = $1 AND role = $2
	`, employeeEmail, RoleEmployee)
	return err
}

// IncrementEmployeeCountIfBelowLimit is the admission-control primitive: the
// limit check and the increment are one statement, so two concurrent joins
// against the last seat cannot both pass a stale check.
func (r *repository) IncrementEmployeeCountIfBelowLimit(ctx context.Context, hrEmail string) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE users
		SET current_employees = current_employees + 1, updated_at = now()
		WHERE email = $1 AND role = $2 AND current_employees < package_limit
	`, hrEmail, RoleHR)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) DecrementEmployeeCount(ctx context.Context, hrEmail string) error {
	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		UPDATE users
		SET current_employees = GREATEST(current_employees - 1, 0), updated_at = now()
		WHERE email = $1 AND role = $2
	`, hrEmail, RoleHR)
	return err
}

// UpdateSubscription replaces tier and limit in one statement. It never
// touches current_employees; a downgrade below the current headcount simply
// blocks further joins.
func (r *repository) UpdateSubscription(ctx context.Context, hrEmail, tier string, limit int) error {
	exec, err := r.execer()
	if err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		UPDATE users
		SET subscription_tier = $1, package_limit = $2, updated_at = now()
		WHERE email = $3 AND role = $4
	`, tier, limit, hrEmail, RoleHR)
	return err
}
