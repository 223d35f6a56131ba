package assetrequest

import (
	"context"
	"database/sql"
	"time"

	"go-assethub/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assetrequest_repo.go -destination=mock/assetrequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *AssetRequest) error
	FindByIDAndOwner(ctx context.Context, hrEmail, id string) (*AssetRequest, error)
	FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssetRequest, int64, error)
	FindAllByRequester(ctx context.Context, requesterEmail string, f ListFilter) ([]AssetRequest, int64, error)
	UpdateStatusIfPending(ctx context.Context, id, status string, decidedAt time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, req *AssetRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByIDAndOwner(ctx context.Context, hrEmail, id string) (*AssetRequest, error) {
	var req AssetRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.OwnerScope(hrEmail)).
		First(&req, "id = ?", id).Error
	return &req, err
}

func applyFilter(db *gorm.DB, f ListFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		db = db.Where("requester_name ILIKE ? OR requester_email ILIKE ?", pattern, pattern)
	}
	if f.Type != "" {
		db = db.Where("asset_type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("request_status = ?", f.Status)
	}
	return db
}

func (r *repository) FindAllByOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssetRequest, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&AssetRequest{}).Scopes(tenant.OwnerScope(hrEmail)),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []AssetRequest
	err := base.
		Order("request_date DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindAllByRequester(ctx context.Context, requesterEmail string, f ListFilter) ([]AssetRequest, int64, error) {
	base := applyFilter(
		r.db.WithContext(ctx).Model(&AssetRequest{}).Where("requester_email = ?", requesterEmail),
		f,
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []AssetRequest
	err := base.
		Order("request_date DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&requests).Error
	return requests, total, err
}

// UpdateStatusIfPending is the decision primitive. The pending guard and the
// status write are one statement, so two HR tabs deciding the same request
// cannot both succeed; false means another decision already landed.
func (r *repository) UpdateStatusIfPending(ctx context.Context, id, status string, decidedAt time.Time) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE asset_requests
		SET request_status = $1, approval_date = $2, updated_at = now()
		WHERE id = $3 AND request_status = $4
	`, status, decidedAt, id, StatusPending)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
