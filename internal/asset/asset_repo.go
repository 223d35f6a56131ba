package asset

import (
	"context"
	"database/sql"

	"go-assethub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=asset_repo.go -destination=mock/asset_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Asset) error
	FindByID(ctx context.Context, id string) (*Asset, error)
	FindByIDAndOwner(ctx context.Context, hrEmail, id string) (*Asset, error)
	FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]Asset, int64, error)
	FindAllByCompany(ctx context.Context, companyName string, f ListFilter) ([]Asset, int64, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, hrEmail, id string) error
	ReserveUnit(ctx context.Context, id string) (bool, error)
	ReleaseUnit(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByIDAndOwner(ctx context.Context, hrEmail, id string) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).
		Scopes(tenant.OwnerScope(hrEmail)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func applyFilter(db *gorm.DB, f ListFilter) *gorm.DB {
	if f.Search != "" {
		db = db.Where("product_name ILIKE ?", "%"+f.Search+"%")
	}
	if f.Type != "" {
		db = db.Where("product_type = ?", f.Type)
	}
	return db
}

func (r *repository) FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]Asset, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&Asset{}).Scopes(tenant.OwnerScope(hrEmail)),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []Asset
	err := base.
		Order("date_added DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&assets).Error
	return assets, total, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyName string, f ListFilter) ([]Asset, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&Asset{}).Scopes(tenant.CompanyScope(companyName)),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []Asset
	err := base.
		Order("date_added DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&assets).Error
	return assets, total, err
}

func (r *repository) Update(ctx context.Context, a *Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, hrEmail, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.OwnerScope(hrEmail)).
		Delete(&Asset{}, "id = ?", id).Error
}

// ReserveUnit takes one unit out of stock. The guard and the decrement are a
// single statement so two approvals racing for the last unit cannot both win;
// false means the asset had no stock left (or does not exist).
func (r *repository) ReserveUnit(ctx context.Context, id string) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE assets
		SET available_quantity = available_quantity - 1, updated_at = now()
		WHERE id = $1 AND available_quantity > 0 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ReleaseUnit puts one unit back, capped at product_quantity. A false return
// means the cap was already reached; callers treat that as a no-op.
func (r *repository) ReleaseUnit(ctx context.Context, id string) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE assets
		SET available_quantity = available_quantity + 1, updated_at = now()
		WHERE id = $1 AND available_quantity < product_quantity AND deleted_at IS NULL
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
