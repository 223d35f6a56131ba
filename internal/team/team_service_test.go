package team_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"go-assethub/internal/events"
	"go-assethub/internal/messaging/kafka"
	"go-assethub/internal/team"
	teamerrors "go-assethub/internal/team/errors"
	"go-assethub/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	user.Repository

	getByEmailFn                        func(ctx context.Context, email string) (*user.User, error)
	findEmployeesByHRFn                 func(ctx context.Context, hrEmail string) ([]user.User, error)
	findByCompanyFn                     func(ctx context.Context, companyName string) ([]user.User, error)
	assignCompanyFn                     func(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error
	clearCompanyFn                      func(ctx context.Context, employeeEmail string) error
	incrementEmployeeCountIfBelowLimitF func(ctx context.Context, hrEmail string) (bool, error)
	decrementEmployeeCountFn            func(ctx context.Context, hrEmail string) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindEmployeesByHR(ctx context.Context, hrEmail string) ([]user.User, error) {
	if f.findEmployeesByHRFn != nil {
		return f.findEmployeesByHRFn(ctx, hrEmail)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByCompany(ctx context.Context, companyName string) ([]user.User, error) {
	if f.findByCompanyFn != nil {
		return f.findByCompanyFn(ctx, companyName)
	}
	return nil, nil
}

func (f *fakeUserRepository) AssignCompany(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error {
	if f.assignCompanyFn != nil {
		return f.assignCompanyFn(ctx, employeeEmail, companyName, companyLogo, hrEmail)
	}
	return nil
}

func (f *fakeUserRepository) ClearCompany(ctx context.Context, employeeEmail string) error {
	if f.clearCompanyFn != nil {
		return f.clearCompanyFn(ctx, employeeEmail)
	}
	return nil
}

func (f *fakeUserRepository) IncrementEmployeeCountIfBelowLimit(ctx context.Context, hrEmail string) (bool, error) {
	if f.incrementEmployeeCountIfBelowLimitF != nil {
		return f.incrementEmployeeCountIfBelowLimitF(ctx, hrEmail)
	}
	return true, nil
}

func (f *fakeUserRepository) DecrementEmployeeCount(ctx context.Context, hrEmail string) error {
	if f.decrementEmployeeCountFn != nil {
		return f.decrementEmployeeCountFn(ctx, hrEmail)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type teamServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    team.Service
	userRepo   *fakeUserRepository
	outboxRepo *fakeOutboxRepository
}

func setupTeamServiceTest(t *testing.T) *teamServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	userRepo := &fakeUserRepository{}
	outboxRepo := &fakeOutboxRepository{}
	svc := team.NewService(db, userRepo, outboxRepo)

	return &teamServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func hrAccount() *user.User {
	return &user.User{
		ID:               uuid.New(),
		Name:             "Morgan",
		Email:            "hr@acme.test",
		Role:             user.RoleHR,
		CompanyName:      "Acme",
		CompanyLogo:      "https://logo.test/acme.png",
		SubscriptionTier: user.DefaultSubscriptionTier,
		PackageLimit:     user.DefaultPackageLimit,
		CurrentEmployees: 2,
	}
}

func freeEmployee(email string) *user.User {
	return &user.User{
		ID:    uuid.New(),
		Name:  "Jordan",
		Email: email,
		Role:  user.RoleEmployee,
	}
}

func TestTeamService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("success takes a seat and affiliates", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			if email == "hr@acme.test" {
				return hrAccount(), nil
			}
			return freeEmployee(email), nil
		}

		assigned := false
		deps.userRepo.assignCompanyFn = func(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error {
			assert.Equal(t, "emp@acme.test", employeeEmail)
			assert.Equal(t, "Acme", companyName)
			assert.Equal(t, "hr@acme.test", hrEmail)
			assigned = true
			return nil
		}

		var published kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = event
			return nil
		}

		resp, err := deps.service.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: "emp@acme.test"})

		assert.NoError(t, err)
		assert.True(t, assigned)
		assert.Equal(t, "emp@acme.test", resp.Email)

		assert.Equal(t, events.EmployeeJoinedTopic, published.Topic)
		var payload events.EmployeeJoinedEvent
		assert.NoError(t, json.Unmarshal(published.Payload, &payload))
		assert.Equal(t, "employee.joined", payload.EventType)
		assert.Equal(t, "emp@acme.test", payload.EmployeeEmail)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative limit reached", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			if email == "hr@acme.test" {
				return hrAccount(), nil
			}
			return freeEmployee(email), nil
		}
		deps.userRepo.incrementEmployeeCountIfBelowLimitF = func(ctx context.Context, hrEmail string) (bool, error) {
			return false, nil
		}
		deps.userRepo.assignCompanyFn = func(ctx context.Context, employeeEmail, companyName, companyLogo, hrEmail string) error {
			t.Fatal("no seat means no affiliation")
			return nil
		}

		_, err := deps.service.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: "emp@acme.test"})

		assert.ErrorIs(t, err, teamerrors.ErrEmployeeLimitReached)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already affiliated", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			if email == "hr@acme.test" {
				return hrAccount(), nil
			}
			e := freeEmployee(email)
			e.CompanyName = "Globex"
			return e, nil
		}

		_, err := deps.service.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: "emp@acme.test"})

		assert.ErrorIs(t, err, teamerrors.ErrAlreadyAffiliated)
	})

	t.Run("negative target is an hr account", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return hrAccount(), nil
		}

		_, err := deps.service.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: "other-hr@acme.test"})

		assert.ErrorIs(t, err, teamerrors.ErrNotAnEmployee)
	})

	t.Run("negative unknown account", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			if email == "hr@acme.test" {
				return hrAccount(), nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: "ghost@acme.test"})

		assert.ErrorIs(t, err, teamerrors.ErrMemberNotFound)
	})
}

func TestTeamService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("success frees the seat", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			e := freeEmployee(email)
			e.CompanyName = "Acme"
			e.HREmail = "hr@acme.test"
			return e, nil
		}

		cleared := false
		deps.userRepo.clearCompanyFn = func(ctx context.Context, employeeEmail string) error {
			assert.Equal(t, "emp@acme.test", employeeEmail)
			cleared = true
			return nil
		}

		decremented := false
		deps.userRepo.decrementEmployeeCountFn = func(ctx context.Context, hrEmail string) error {
			assert.Equal(t, "hr@acme.test", hrEmail)
			decremented = true
			return nil
		}

		err := deps.service.RemoveMember(ctx, "hr@acme.test", "emp@acme.test")

		assert.NoError(t, err)
		assert.True(t, cleared)
		assert.True(t, decremented)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative member of another team is invisible", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			e := freeEmployee(email)
			e.CompanyName = "Globex"
			e.HREmail = "hr@globex.test"
			return e, nil
		}

		err := deps.service.RemoveMember(ctx, "hr@acme.test", "emp@globex.test")

		assert.ErrorIs(t, err, teamerrors.ErrMemberNotFound)
	})
}

func TestTeamService_GetMyTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			e := freeEmployee(email)
			e.CompanyName = "Acme"
			e.HREmail = "hr@acme.test"
			return e, nil
		}
		deps.userRepo.findByCompanyFn = func(ctx context.Context, companyName string) ([]user.User, error) {
			assert.Equal(t, "Acme", companyName)
			return []user.User{*hrAccount(), *freeEmployee("emp@acme.test")}, nil
		}

		resp, err := deps.service.GetMyTeam(ctx, "emp@acme.test")

		assert.NoError(t, err)
		assert.Equal(t, "Acme", resp.CompanyName)
		assert.Len(t, resp.Members, 2)
	})

	t.Run("negative unaffiliated caller fails closed", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return freeEmployee(email), nil
		}
		deps.userRepo.findByCompanyFn = func(ctx context.Context, companyName string) ([]user.User, error) {
			t.Fatal("an empty company must never be queried")
			return nil, nil
		}

		_, err := deps.service.GetMyTeam(ctx, "emp@acme.test")

		assert.ErrorIs(t, err, teamerrors.ErrNoCompany)
	})
}

func TestTeamService_GetMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("success includes seat usage", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.userRepo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return hrAccount(), nil
		}
		deps.userRepo.findEmployeesByHRFn = func(ctx context.Context, hrEmail string) ([]user.User, error) {
			return []user.User{*freeEmployee("emp@acme.test")}, nil
		}

		members, usage, err := deps.service.GetMembers(ctx, "hr@acme.test")

		assert.NoError(t, err)
		assert.Len(t, members, 1)
		assert.Equal(t, user.DefaultPackageLimit, usage.PackageLimit)
		assert.Equal(t, 2, usage.CurrentEmployees)
	})
}

// Six invitations racing for the last seat on the plan: exactly one
// admission wins the counter update, the rest report the limit.
func TestTeamService_AddMember_ConcurrentLastSeat(t *testing.T) {
	ctx := context.Background()
	const invites = 6

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.MatchExpectationsInOrder(false)
	for i := 0; i < invites; i++ {
		sqlMock.ExpectBegin()
	}
	sqlMock.ExpectCommit()
	for i := 0; i < invites-1; i++ {
		sqlMock.ExpectRollback()
	}

	var seats atomic.Int32
	seats.Store(1)

	userRepo := &fakeUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			if email == "hr@acme.test" {
				return hrAccount(), nil
			}
			return freeEmployee(email), nil
		},
		incrementEmployeeCountIfBelowLimitF: func(ctx context.Context, hrEmail string) (bool, error) {
			return seats.Add(-1) >= 0, nil
		},
	}
	svc := team.NewService(db, userRepo, &fakeOutboxRepository{})

	var wg sync.WaitGroup
	var admitted, limited atomic.Int32
	for i := 0; i < invites; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("emp%d@acme.test", n)
			_, err := svc.AddMember(ctx, "hr@acme.test", team.AddMemberRequest{Email: email})
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, teamerrors.ErrEmployeeLimitReached):
				limited.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
	assert.Equal(t, int32(invites-1), limited.Load())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
