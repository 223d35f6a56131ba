package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-assethub/internal/asset"
	assignmenterrors "go-assethub/internal/assignment/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	ListForEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssignmentResponse, int64, error)
	ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssignmentResponse, int64, error)
	Return(ctx context.Context, employeeEmail, id string) (AssignmentResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	assetRepo asset.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, assetRepo asset.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{db: db, repo: repo, assetRepo: assetRepo, logger: l}
}

func (s *service) ListForEmployee(ctx context.Context, employeeEmail string, f ListFilter) ([]AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.FindAllByEmployee(ctx, employeeEmail, f)
	if err != nil {
		s.logger.Error("list assignments by employee failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(assignments), total, nil
}

func (s *service) ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.FindAllByOwner(ctx, hrEmail, f)
	if err != nil {
		s.logger.Error("list assignments by owner failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(assignments), total, nil
}

// Return flips one assignment to returned and puts the unit back in stock.
// Only Returnable assets qualify; non-returnable units are consumed for good.
func (s *service) Return(ctx context.Context, employeeEmail, id string) (AssignmentResponse, error) {
	s.logger.Debug("return assignment requested",
		zap.String("employee_email", employeeEmail),
		zap.String("assignment_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("return assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := s.repo.FindByIDAndEmployee(ctx, employeeEmail, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	if a.AssetType != asset.TypeReturnable {
		return AssignmentResponse{}, assignmenterrors.ErrNotReturnable
	}

	now := time.Now().UTC()
	flipped, err := qtx.MarkReturnedIfAssigned(ctx, id, now)
	if err != nil {
		s.logger.Error("return assignment flip failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}
	if !flipped {
		return AssignmentResponse{}, assignmenterrors.ErrAlreadyReturned
	}

	// Release is capped at product_quantity; a no-op release after an
	// administrative quantity correction is not an error.
	if _, err := s.assetRepo.WithTx(tx).ReleaseUnit(ctx, a.AssetID.String()); err != nil {
		s.logger.Error("return assignment release unit failed",
			zap.String("assignment_id", id),
			zap.String("asset_id", a.AssetID.String()),
			zap.Error(err),
		)
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("return assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	a.Status = StatusReturned
	a.ReturnDate = &now

	s.logger.Info("return assignment success",
		zap.String("assignment_id", id),
		zap.String("asset_id", a.AssetID.String()),
	)
	return mapToResponse(*a), nil
}

func mapToResponse(a AssignedAsset) AssignmentResponse {
	resp := AssignmentResponse{
		ID:             a.ID.String(),
		AssetID:        a.AssetID.String(),
		AssetName:      a.AssetName,
		AssetImage:     a.AssetImage,
		AssetType:      a.AssetType,
		EmployeeEmail:  a.EmployeeEmail,
		EmployeeName:   a.EmployeeName,
		HREmail:        a.HREmail,
		CompanyName:    a.CompanyName,
		AssignmentDate: a.AssignmentDate.Format(time.RFC3339),
		Status:         a.Status,
	}
	if a.ReturnDate != nil {
		v := a.ReturnDate.Format(time.RFC3339)
		resp.ReturnDate = &v
	}
	return resp
}

func mapToListResponse(assignments []AssignedAsset) []AssignmentResponse {
	resp := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapToResponse(a)
	}
	return resp
}
