package assetrequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-assethub/internal/asset"
	asseterrors "go-assethub/internal/asset/errors"
	assetrequesterrors "go-assethub/internal/assetrequest/errors"
	"go-assethub/internal/assignment"
	"go-assethub/internal/events"
	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/shared/contextutil"
	"go-assethub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assetrequest_service.go -destination=mock/assetrequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, requesterEmail string, req SubmitRequest) (RequestResponse, error)
	ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]RequestResponse, int64, error)
	ListForRequester(ctx context.Context, requesterEmail string, f ListFilter) ([]RequestResponse, int64, error)
	Approve(ctx context.Context, hrEmail, id string) (RequestResponse, error)
	Reject(ctx context.Context, hrEmail, id string) (RequestResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	assetRepo      asset.Repository
	assignmentRepo assignment.Repository
	userRepo       user.Repository
	outboxRepo     kafka.OutboxRepository
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	assetRepo asset.Repository,
	assignmentRepo assignment.Repository,
	userRepo user.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assetrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assetrequest.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		assetRepo:      assetRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		outboxRepo:     outboxRepo,
		logger:         l,
	}
}

// Submit files a pending request against an asset in the requester's company.
// Company membership is read from the database, not the token, so an employee
// who joined a team after logging in does not need a fresh token. Requests
// against an out of stock asset are accepted; stock is only checked at
// approval time.
func (s *service) Submit(ctx context.Context, requesterEmail string, req SubmitRequest) (RequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit asset request",
		zap.String("request_id", rid),
		zap.String("requester_email", requesterEmail),
		zap.String("asset_id", req.AssetID),
	)

	requester, err := s.userRepo.GetByEmail(ctx, requesterEmail)
	if err != nil {
		s.logger.Error("submit request load requester failed", zap.String("request_id", rid), zap.Error(err))
		return RequestResponse{}, err
	}
	if requester.CompanyName == "" {
		return RequestResponse{}, assetrequesterrors.ErrNoCompany
	}

	a, err := s.assetRepo.FindByID(ctx, req.AssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, asseterrors.ErrAssetNotFound
		}
		return RequestResponse{}, err
	}
	// Assets outside the requester's company are invisible, not forbidden
	if a.CompanyName != requester.CompanyName {
		return RequestResponse{}, asseterrors.ErrAssetNotFound
	}

	r := &AssetRequest{
		ID:             uuid.New(),
		AssetID:        a.ID,
		AssetName:      a.ProductName,
		AssetImage:     a.ProductImage,
		AssetType:      a.ProductType,
		RequesterEmail: requester.Email,
		RequesterName:  requester.Name,
		HREmail:        a.HREmail,
		CompanyName:    a.CompanyName,
		Note:           req.Note,
		RequestStatus:  StatusPending,
		RequestDate:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error("submit request persist failed", zap.String("request_id", rid), zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("submit asset request success",
		zap.String("request_id", rid),
		zap.String("asset_request_id", r.ID.String()),
		zap.String("asset_id", a.ID.String()),
	)
	return mapToResponse(*r), nil
}

func (s *service) ListForOwner(ctx context.Context, hrEmail string, f ListFilter) ([]RequestResponse, int64, error) {
	requests, total, err := s.repo.FindAllByOwner(ctx, hrEmail, f)
	if err != nil {
		s.logger.Error("list requests by owner failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) ListForRequester(ctx context.Context, requesterEmail string, f ListFilter) ([]RequestResponse, int64, error) {
	requests, total, err := s.repo.FindAllByRequester(ctx, requesterEmail, f)
	if err != nil {
		s.logger.Error("list requests by requester failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

// Approve reserves a unit, flips the request to approved and creates the
// assignment in one transaction. Losing the stock race leaves the request
// pending so HR can retry once a unit comes back.
func (s *service) Approve(ctx context.Context, hrEmail, id string) (RequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("approve asset request",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("asset_request_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := s.repo.FindByIDAndOwner(ctx, hrEmail, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, assetrequesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.RequestStatus != StatusPending {
		return RequestResponse{}, assetrequesterrors.ErrAlreadyProcessed
	}

	reserved, err := s.assetRepo.WithTx(tx).ReserveUnit(ctx, r.AssetID.String())
	if err != nil {
		s.logger.Error("approve request reserve unit failed",
			zap.String("asset_request_id", id),
			zap.String("asset_id", r.AssetID.String()),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if !reserved {
		return RequestResponse{}, asseterrors.ErrOutOfStock
	}

	now := time.Now().UTC()
	flipped, err := qtx.UpdateStatusIfPending(ctx, id, StatusApproved, now)
	if err != nil {
		s.logger.Error("approve request status flip failed", zap.String("asset_request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}
	if !flipped {
		return RequestResponse{}, assetrequesterrors.ErrAlreadyProcessed
	}

	assigned := &assignment.AssignedAsset{
		ID:             uuid.New(),
		AssetID:        r.AssetID,
		AssetName:      r.AssetName,
		AssetImage:     r.AssetImage,
		AssetType:      r.AssetType,
		EmployeeEmail:  r.RequesterEmail,
		EmployeeName:   r.RequesterName,
		HREmail:        r.HREmail,
		CompanyName:    r.CompanyName,
		AssignmentDate: now,
		Status:         assignment.StatusAssigned,
	}
	if err := s.assignmentRepo.WithTx(tx).Create(ctx, assigned); err != nil {
		s.logger.Error("approve request create assignment failed", zap.String("asset_request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}

	if err := s.writeAssignedEvent(ctx, tx, rid, r, assigned, now); err != nil {
		s.logger.Error("approve request outbox write failed", zap.String("asset_request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	r.RequestStatus = StatusApproved
	r.ApprovalDate = &now

	s.logger.Info("approve asset request success",
		zap.String("request_id", rid),
		zap.String("asset_request_id", id),
		zap.String("assignment_id", assigned.ID.String()),
	)
	return mapToResponse(*r), nil
}

// Reject flips the request to rejected. No stock is touched and the employee
// may submit a fresh request for the same asset afterwards.
func (s *service) Reject(ctx context.Context, hrEmail, id string) (RequestResponse, error) {
	s.logger.Debug("reject asset request",
		zap.String("hr_email", hrEmail),
		zap.String("asset_request_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := s.repo.FindByIDAndOwner(ctx, hrEmail, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, assetrequesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if r.RequestStatus != StatusPending {
		return RequestResponse{}, assetrequesterrors.ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	flipped, err := qtx.UpdateStatusIfPending(ctx, id, StatusRejected, now)
	if err != nil {
		s.logger.Error("reject request status flip failed", zap.String("asset_request_id", id), zap.Error(err))
		return RequestResponse{}, err
	}
	if !flipped {
		return RequestResponse{}, assetrequesterrors.ErrAlreadyProcessed
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	r.RequestStatus = StatusRejected
	r.ApprovalDate = &now

	s.logger.Info("reject asset request success", zap.String("asset_request_id", id))
	return mapToResponse(*r), nil
}

func (s *service) writeAssignedEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	r *AssetRequest,
	assigned *assignment.AssignedAsset,
	now time.Time,
) error {
	payload, err := json.Marshal(events.AssetAssignedEvent{
		EventType:     "asset.assigned",
		RequestID:     rid,
		AssignmentID:  assigned.ID.String(),
		AssetID:       r.AssetID.String(),
		AssetName:     r.AssetName,
		EmployeeEmail: r.RequesterEmail,
		HREmail:       r.HREmail,
		CompanyName:   r.CompanyName,
		OccurredAt:    now,
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "assignment",
		AggregateID:   assigned.ID.String(),
		EventType:     "asset.assigned",
		Topic:         events.AssetAssignedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(r AssetRequest) RequestResponse {
	resp := RequestResponse{
		ID:             r.ID.String(),
		AssetID:        r.AssetID.String(),
		AssetName:      r.AssetName,
		AssetImage:     r.AssetImage,
		AssetType:      r.AssetType,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
		HREmail:        r.HREmail,
		CompanyName:    r.CompanyName,
		Note:           r.Note,
		RequestStatus:  r.RequestStatus,
		RequestDate:    r.RequestDate.Format(time.RFC3339),
	}
	if r.ApprovalDate != nil {
		v := r.ApprovalDate.Format(time.RFC3339)
		resp.ApprovalDate = &v
	}
	return resp
}

func mapToListResponse(requests []AssetRequest) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
