package subscription

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-assethub/internal/shared/contextutil"
	subscriptionerrors "go-assethub/internal/subscription/errors"
	"go-assethub/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	packagesCacheKey = "subscription:packages"
	packagesCacheTTL = 10 * time.Minute
)

// DefaultPackages is the seeded tier catalog
var DefaultPackages = []Package{
	{Name: "basic", Price: 5, EmployeeLimit: 5, Features: []string{"5 team members", "asset tracking"}},
	{Name: "standard", Price: 8, EmployeeLimit: 10, Features: []string{"10 team members", "asset tracking", "priority support"}},
	{Name: "premium", Price: 15, EmployeeLimit: 20, Features: []string{"20 team members", "asset tracking", "priority support", "analytics"}},
}

//go:generate mockgen -source=subscription_service.go -destination=mock/subscription_service_mock.go -package=mock
type Service interface {
	ListPackages(ctx context.Context) ([]PackageResponse, error)
	CreateCheckout(ctx context.Context, hrEmail string, req CreateCheckoutRequest) (CheckoutResponse, error)
	PaymentSuccess(ctx context.Context, hrEmail string, req PaymentSuccessRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, hrEmail string) ([]PaymentResponse, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	userRepo        user.Repository
	cache           *redis.Client
	group           singleflight.Group
	checkoutBaseURL string
	logger          *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	cache *redis.Client,
	checkoutBaseURL string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("subscription.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subscription.service")
	}
	return &service{
		db:              db,
		repo:            repo,
		userRepo:        userRepo,
		cache:           cache,
		checkoutBaseURL: checkoutBaseURL,
		logger:          l,
	}
}

// ListPackages serves the tier catalog from redis. Misses collapse into one
// database read via singleflight; a broken cache degrades to the database.
func (s *service) ListPackages(ctx context.Context) ([]PackageResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, packagesCacheKey).Bytes()
		if err == nil {
			var resp []PackageResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("packages cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(packagesCacheKey, func() (any, error) {
		packages, err := s.repo.ListPackages(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToPackageList(packages)

		if s.cache != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.cache.Set(ctx, packagesCacheKey, data, packagesCacheTTL).Err(); err != nil {
					s.logger.Warn("packages cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list packages failed", zap.Error(err))
		return nil, err
	}
	return v.([]PackageResponse), nil
}

// CreateCheckout opens a pending session and hands back the hosted payment
// URL. Nothing on the account changes until the payment confirmation lands.
func (s *service) CreateCheckout(ctx context.Context, hrEmail string, req CreateCheckoutRequest) (CheckoutResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create checkout requested",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("package_id", req.PackageID),
	)

	pkg, err := s.repo.FindPackageByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckoutResponse{}, subscriptionerrors.ErrPackageNotFound
		}
		return CheckoutResponse{}, err
	}

	session := &CheckoutSession{
		ID:            uuid.New(),
		CustomerEmail: hrEmail,
		PackageID:     pkg.ID,
		Status:        SessionStatusPending,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.logger.Error("create checkout persist failed", zap.String("request_id", rid), zap.Error(err))
		return CheckoutResponse{}, err
	}

	s.logger.Info("create checkout success",
		zap.String("request_id", rid),
		zap.String("session_id", session.ID.String()),
		zap.String("package_name", pkg.Name),
	)
	return CheckoutResponse{
		SessionID:   session.ID.String(),
		CheckoutURL: fmt.Sprintf("%s/pay/%s", s.checkoutBaseURL, session.ID.String()),
	}, nil
}

// PaymentSuccess confirms a checkout: it completes the session, records the
// payment and moves the account to the purchased tier in one transaction.
// current_employees is never touched here; a downgrade below the present
// headcount only blocks further joins.
func (s *service) PaymentSuccess(ctx context.Context, hrEmail string, req PaymentSuccessRequest) (PaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payment success requested",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("session_id", req.SessionID),
	)

	session, err := s.repo.FindSessionByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, subscriptionerrors.ErrSessionNotFound
		}
		return PaymentResponse{}, err
	}
	// Sessions opened by other accounts are invisible
	if session.CustomerEmail != hrEmail {
		return PaymentResponse{}, subscriptionerrors.ErrSessionNotFound
	}

	pkg, err := s.repo.FindPackageByID(ctx, session.PackageID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, subscriptionerrors.ErrPackageNotFound
		}
		return PaymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payment success begin tx failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	completed, err := qtx.CompleteSessionIfPending(ctx, req.SessionID)
	if err != nil {
		s.logger.Error("payment success session flip failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return PaymentResponse{}, err
	}
	if !completed {
		return PaymentResponse{}, subscriptionerrors.ErrSessionCompleted
	}

	payment := &Payment{
		ID:            uuid.New(),
		CustomerEmail: hrEmail,
		PackageName:   pkg.Name,
		Amount:        pkg.Price,
		TransactionID: session.ID.String(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := qtx.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("payment success persist failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := s.userRepo.WithTx(tx).UpdateSubscription(ctx, hrEmail, pkg.Name, pkg.EmployeeLimit); err != nil {
		s.logger.Error("payment success tier update failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payment success commit failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	s.logger.Info("payment success",
		zap.String("request_id", rid),
		zap.String("hr_email", hrEmail),
		zap.String("package_name", pkg.Name),
		zap.Int("employee_limit", pkg.EmployeeLimit),
	)
	return mapToPayment(*payment), nil
}

func (s *service) ListPayments(ctx context.Context, hrEmail string) ([]PaymentResponse, error) {
	payments, err := s.repo.ListPaymentsByCustomer(ctx, hrEmail)
	if err != nil {
		s.logger.Error("list payments failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = mapToPayment(p)
	}
	return resp, nil
}

func mapToPayment(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		PackageName:   p.PackageName,
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		PaidAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

func mapToPackageList(packages []Package) []PackageResponse {
	resp := make([]PackageResponse, len(packages))
	for i, p := range packages {
		resp[i] = PackageResponse{
			ID:            p.ID.String(),
			Name:          p.Name,
			Price:         p.Price,
			EmployeeLimit: p.EmployeeLimit,
			Features:      p.Features,
		}
	}
	return resp
}
