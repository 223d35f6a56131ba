package asset

import (
	"context"
	"database/sql"
	"errors"
	"time"

	asseterrors "go-assethub/internal/asset/errors"
	"go-assethub/internal/shared/contextutil"
	"go-assethub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=asset_service.go -destination=mock/asset_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, hrEmail, companyName string, req CreateAssetRequest) (AssetResponse, error)
	ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssetResponse, int64, error)
	ListForEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssetResponse, int64, error)
	GetByID(ctx context.Context, hrEmail, id string) (AssetResponse, error)
	Update(ctx context.Context, hrEmail, id string, req UpdateAssetRequest) (AssetResponse, error)
	Delete(ctx context.Context, hrEmail, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("asset.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, logger: l}
}

func (s *service) Create(ctx context.Context, hrEmail, companyName string, req CreateAssetRequest) (AssetResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create asset requested",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("product_name", req.ProductName),
	)

	// Every unit starts available
	a := &Asset{
		ID:                uuid.New(),
		ProductName:       req.ProductName,
		ProductImage:      req.ProductImage,
		ProductType:       req.ProductType,
		ProductQuantity:   req.ProductQuantity,
		AvailableQuantity: req.ProductQuantity,
		CompanyName:       companyName,
		HREmail:           hrEmail,
		DateAdded:         time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create asset persist failed", zap.String("request_id", rid), zap.Error(err))
		return AssetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create asset success",
		zap.String("request_id", rid),
		zap.String("asset_id", a.ID.String()),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssetResponse, int64, error) {
	assets, total, err := s.repo.FindAllByOwner(ctx, hrEmail, f)
	if err != nil {
		s.logger.Error("list assets by owner failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(assets), total, nil
}

// ListForEmployee scopes the catalog by the caller's affiliation as stored in
// the database, not by the token, so a join or removal applies on the next
// request instead of the next login.
func (s *service) ListForEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssetResponse, int64, error) {
	u, err := s.userRepo.GetByEmail(ctx, employeeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, asseterrors.ErrNoCompany
		}
		s.logger.Error("list assets load caller failed", zap.Error(err))
		return nil, 0, err
	}
	// An employee without a company sees nothing, never everything
	if u.CompanyName == "" {
		return nil, 0, asseterrors.ErrNoCompany
	}

	assets, total, err := s.repo.FindAllByCompany(ctx, u.CompanyName, f)
	if err != nil {
		s.logger.Error("list assets by company failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(assets), total, nil
}

func (s *service) GetByID(ctx context.Context, hrEmail, id string) (AssetResponse, error) {
	a, err := s.repo.FindByIDAndOwner(ctx, hrEmail, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

// Update is the administrative override path: quantities can be corrected
// directly, but the 0 <= available <= product_quantity invariant still holds.
func (s *service) Update(ctx context.Context, hrEmail, id string, req UpdateAssetRequest) (AssetResponse, error) {
	s.logger.Debug("update asset requested",
		zap.String("hr_email", hrEmail),
		zap.String("asset_id", id),
	)

	if req.AvailableQuantity == nil {
		return AssetResponse{}, asseterrors.ErrInvalidQuantity
	}
	available := *req.AvailableQuantity
	if available < 0 || available > req.ProductQuantity {
		return AssetResponse{}, asseterrors.ErrInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update asset begin tx failed", zap.Error(err))
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByIDAndOwner(ctx, hrEmail, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	a.ProductName = req.ProductName
	a.ProductImage = req.ProductImage
	a.ProductType = req.ProductType
	a.ProductQuantity = req.ProductQuantity
	a.AvailableQuantity = available

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update asset persist failed", zap.String("asset_id", id), zap.Error(err))
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update asset commit failed", zap.Error(err))
		return AssetResponse{}, err
	}

	s.logger.Info("update asset success", zap.String("asset_id", id))
	return mapToResponse(*a), nil
}

// Delete removes the asset only. Historical requests and assignments keep
// referencing the deleted id as records.
func (s *service) Delete(ctx context.Context, hrEmail, id string) error {
	if err := s.repo.Delete(ctx, hrEmail, id); err != nil {
		s.logger.Error("delete asset failed", zap.String("asset_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete asset success", zap.String("asset_id", id))
	return nil
}

func mapToResponse(a Asset) AssetResponse {
	return AssetResponse{
		ID:                a.ID.String(),
		ProductName:       a.ProductName,
		ProductImage:      a.ProductImage,
		ProductType:       a.ProductType,
		ProductQuantity:   a.ProductQuantity,
		AvailableQuantity: a.AvailableQuantity,
		CompanyName:       a.CompanyName,
		HREmail:           a.HREmail,
		DateAdded:         a.DateAdded.Format(time.RFC3339),
	}
}

func mapToListResponse(assets []Asset) []AssetResponse {
	resp := make([]AssetResponse, len(assets))
	for i, a := range assets {
		resp[i] = mapToResponse(a)
	}
	return resp
}
