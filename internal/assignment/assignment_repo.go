package assignment

import (
	"context"
	"database/sql"
	"time"

	"go-assethub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AssignedAsset) error
	FindByIDAndEmployee(ctx context.Context, employeeEmail, id string) (*AssignedAsset, error)
	FindAllByEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssignedAsset, int64, error)
	FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssignedAsset, int64, error)
	MarkReturnedIfAssigned(ctx context.Context, id string, returnedAt time.Time) (bool, error)
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

func (r *repository) execer() (execer, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}

func (r *repository) Create(ctx context.Context, a *AssignedAsset) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO assigned_assets (
				id, asset_id, asset_name, asset_image, asset_type,
				employee_email, employee_name, hr_email, company_name,
				assignment_date, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		`,
			a.ID, a.AssetID, a.AssetName, a.AssetImage, a.AssetType,
			a.EmployeeEmail, a.EmployeeName, a.HREmail, a.CompanyName,
			a.AssignmentDate, a.Status,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, employeeEmail, id string) (*AssignedAsset, error) {
	var a AssignedAsset
	err := r.db.WithContext(ctx).
		Where("employee_email = ?", employeeEmail).
		First(&a, "id = ?", id).Error
	return &a, err
}

func applyFilter(db *gorm.DB, f ListFilter) *gorm.DB {
	if f.Search != "" {
		db = db.Where("asset_name ILIKE ?", "%"+f.Search+"%")
	}
	if f.Type != "" {
		db = db.Where("asset_type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	return db
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssignedAsset, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&AssignedAsset{}).Where("employee_email = ?", employeeEmail),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []AssignedAsset
	err := base.
		Order("assignment_date DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&assignments).Error
	return assignments, total, err
}

func (r *repository) FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssignedAsset, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&AssignedAsset{}).Scopes(tenant.OwnerScope(hrEmail)),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []AssignedAsset
	err := base.
		Order("assignment_date DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&assignments).Error
	return assignments, total, err
}

// MarkReturnedIfAssigned flips assigned to returned exactly once. The guard
// and the flip are one statement; false means the row was already returned.
func (r *repository) MarkReturnedIfAssigned(ctx context.Context, id string, returnedAt time.Time) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE assigned_assets
		SET status = $1, return_date = $2, updated_at = now()
		WHERE id = $3 AND status = $4
	`, StatusReturned, returnedAt, id, StatusAssigned)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
