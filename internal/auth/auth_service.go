package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-assethub/internal/auth/errors"
	"go-assethub/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, email string) (UserResponse, error)
	UpdateMe(ctx context.Context, email string, req UpdateProfileRequest) (UserResponse, error)
	GetRole(ctx context.Context, email string) (string, error)
}

type service struct {
	repo   user.Repository
	logger *zap.Logger
}

func NewService(repo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	s.logger.Debug("register requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidDateOfBirth
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		ProfileImage: req.ProfileImage,
		DateOfBirth:  &dob,
	}

	// Role is fixed here; nothing downstream ever rewrites it.
	switch req.Role {
	case user.RoleHR:
		if req.CompanyName == "" {
			return UserResponse{}, autherrors.ErrCompanyRequired
		}
		u.Role = user.RoleHR
		u.CompanyName = req.CompanyName
		u.CompanyLogo = req.CompanyLogo
		u.HREmail = req.Email
		u.SubscriptionTier = user.DefaultSubscriptionTier
		u.PackageLimit = user.DefaultPackageLimit
		u.CurrentEmployees = 0
	case user.RoleEmployee:
		u.Role = user.RoleEmployee
	default:
		return UserResponse{}, autherrors.ErrInvalidRole
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("register persist failed", zap.String("email", req.Email), zap.Error(err))
		return UserResponse{}, user.MapRepositoryError(err)
	}

	s.logger.Info("register success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapToUserResponse(*u), nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(u, 24*time.Hour)
	if err != nil {
		s.logger.Error("login generate token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return LoginResponse{
		AccessToken: token,
		User:        mapToUserResponse(*u),
	}, nil
}

func (s *service) GetMe(ctx context.Context, email string) (UserResponse, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return UserResponse{}, user.MapRepositoryError(err)
	}
	return mapToUserResponse(*u), nil
}

// UpdateMe changes the display name only. Email, role and affiliation are
// never writable through the profile.
func (s *service) UpdateMe(ctx context.Context, email string, req UpdateProfileRequest) (UserResponse, error) {
	if err := s.repo.UpdateName(ctx, email, req.Name); err != nil {
		s.logger.Error("update profile failed", zap.String("email", email), zap.Error(err))
		return UserResponse{}, user.MapRepositoryError(err)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return UserResponse{}, user.MapRepositoryError(err)
	}

	s.logger.Info("update profile success", zap.String("user_id", u.ID.String()))
	return mapToUserResponse(*u), nil
}

func (s *service) GetRole(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", user.MapRepositoryError(err)
	}
	return u.Role, nil
}

func (s *service) generateToken(u *user.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      u.ID.String(),
		"email":        u.Email,
		"role":         u.Role,
		"company_name": u.CompanyName,
		"exp":          time.Now().Add(ttl).Unix(),
		"iat":          time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToUserResponse(u user.User) UserResponse {
	resp := UserResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		ProfileImage:     u.ProfileImage,
		CompanyName:      u.CompanyName,
		CompanyLogo:      u.CompanyLogo,
		HREmail:          u.HREmail,
		SubscriptionTier: u.SubscriptionTier,
		PackageLimit:     u.PackageLimit,
		CurrentEmployees: u.CurrentEmployees,
	}
	if u.DateOfBirth != nil {
		resp.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return resp
}
