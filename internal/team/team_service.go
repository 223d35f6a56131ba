package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-assethub/internal/events"
	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/shared/contextutil"
	teamerrors "go-assethub/internal/team/errors"
	"go-assethub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	GetMembers(ctx context.Context, hrEmail string) ([]MemberResponse, SeatUsageResponse, error)
	AddMember(ctx context.Context, hrEmail string, req AddMemberRequest) (MemberResponse, error)
	RemoveMember(ctx context.Context, hrEmail, memberEmail string) error
	GetMyTeam(ctx context.Context, employeeEmail string) (TeamResponse, error)
}

type service struct {
	db         *sql.DB
	userRepo   user.Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, userRepo user.Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{db: db, userRepo: userRepo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) GetMembers(ctx context.Context, hrEmail string) ([]MemberResponse, SeatUsageResponse, error) {
	hr, err := s.userRepo.GetByEmail(ctx, hrEmail)
	if err != nil {
		s.logger.Error("get members load hr failed", zap.Error(err))
		return nil, SeatUsageResponse{}, err
	}

	members, err := s.userRepo.FindEmployeesByHR(ctx, hrEmail)
	if err != nil {
		s.logger.Error("get members failed", zap.Error(err))
		return nil, SeatUsageResponse{}, err
	}

	usage := SeatUsageResponse{
		PackageLimit:     hr.PackageLimit,
		CurrentEmployees: hr.CurrentEmployees,
	}
	return mapToMemberList(members), usage, nil
}

// AddMember takes a seat and affiliates the employee in one transaction. The
// seat counter update carries its own limit guard, so concurrent adds against
// the last seat admit exactly one member.
func (s *service) AddMember(ctx context.Context, hrEmail string, req AddMemberRequest) (MemberResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("add team member requested",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("member_email", req.Email),
	)

	hr, err := s.userRepo.GetByEmail(ctx, hrEmail)
	if err != nil {
		s.logger.Error("add member load hr failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}

	target, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberResponse{}, teamerrors.ErrMemberNotFound
		}
		return MemberResponse{}, err
	}
	if target.Role != user.RoleEmployee {
		return MemberResponse{}, teamerrors.ErrNotAnEmployee
	}
	if target.CompanyName != "" {
		return MemberResponse{}, teamerrors.ErrAlreadyAffiliated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add member begin tx failed", zap.Error(err))
		return MemberResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.userRepo.WithTx(tx)

	admitted, err := qtx.IncrementEmployeeCountIfBelowLimit(ctx, hrEmail)
	if err != nil {
		s.logger.Error("add member seat increment failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}
	if !admitted {
		return MemberResponse{}, teamerrors.ErrEmployeeLimitReached
	}

	if err := qtx.AssignCompany(ctx, target.Email, hr.CompanyName, hr.CompanyLogo, hrEmail); err != nil {
		s.logger.Error("add member assign company failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}

	if err := s.writeJoinedEvent(ctx, tx, rid, target.Email, hrEmail, hr.CompanyName); err != nil {
		s.logger.Error("add member outbox write failed", zap.String("request_id", rid), zap.Error(err))
		return MemberResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add member commit failed", zap.Error(err))
		return MemberResponse{}, err
	}

	target.CompanyName = hr.CompanyName
	target.CompanyLogo = hr.CompanyLogo
	target.HREmail = hrEmail

	s.logger.Info("add team member success",
		zap.String("request_id", rid),
		zap.String("member_email", target.Email),
		zap.String("company_name", hr.CompanyName),
	)
	return mapToMember(*target), nil
}

// RemoveMember detaches the employee and frees the seat. Assets the employee
// still holds stay assigned; returning them is a separate flow.
func (s *service) RemoveMember(ctx context.Context, hrEmail, memberEmail string) error {
	s.logger.Debug("remove team member requested",
		zap.String("hr_email", hrEmail),
		zap.String("member_email", memberEmail),
	)

	target, err := s.userRepo.GetByEmail(ctx, memberEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return teamerrors.ErrMemberNotFound
		}
		return err
	}
	// Members of other teams are invisible to this HR account
	if target.Role != user.RoleEmployee || target.HREmail != hrEmail {
		return teamerrors.ErrMemberNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.userRepo.WithTx(tx)

	if err := qtx.ClearCompany(ctx, memberEmail); err != nil {
		s.logger.Error("remove member clear company failed", zap.Error(err))
		return err
	}
	if err := qtx.DecrementEmployeeCount(ctx, hrEmail); err != nil {
		s.logger.Error("remove member seat decrement failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove member commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("remove team member success", zap.String("member_email", memberEmail))
	return nil
}

// GetMyTeam shows the employee their own company roster. An unaffiliated
// employee gets a forbidden error, never another company's roster.
func (s *service) GetMyTeam(ctx context.Context, employeeEmail string) (TeamResponse, error) {
	self, err := s.userRepo.GetByEmail(ctx, employeeEmail)
	if err != nil {
		s.logger.Error("get my team load caller failed", zap.Error(err))
		return TeamResponse{}, err
	}
	if self.CompanyName == "" {
		return TeamResponse{}, teamerrors.ErrNoCompany
	}

	members, err := s.userRepo.FindByCompany(ctx, self.CompanyName)
	if err != nil {
		s.logger.Error("get my team failed", zap.Error(err))
		return TeamResponse{}, err
	}

	return TeamResponse{
		CompanyName: self.CompanyName,
		CompanyLogo: self.CompanyLogo,
		HREmail:     self.HREmail,
		Members:     mapToMemberList(members),
	}, nil
}

func (s *service) writeJoinedEvent(ctx context.Context, tx *sql.Tx, rid, memberEmail, hrEmail, companyName string) error {
	payload, err := json.Marshal(events.EmployeeJoinedEvent{
		EventType:     "employee.joined",
		RequestID:     rid,
		EmployeeEmail: memberEmail,
		HREmail:       hrEmail,
		CompanyName:   companyName,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "team",
		AggregateID:   memberEmail,
		EventType:     "employee.joined",
		Topic:         events.EmployeeJoinedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToMember(u user.User) MemberResponse {
	m := MemberResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
	if u.DateOfBirth != nil {
		m.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return m
}

func mapToMemberList(users []user.User) []MemberResponse {
	members := make([]MemberResponse, len(users))
	for i, u := range users {
		members[i] = mapToMember(u)
	}
	return members
}
