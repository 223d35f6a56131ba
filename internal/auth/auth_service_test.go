package auth_test

import (
	"context"
	"testing"

	"go-assethub/internal/auth"
	autherrors "go-assethub/internal/auth/errors"
	"go-assethub/internal/user"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	user.Repository

	createFn     func(ctx context.Context, u *user.User) error
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
	updateNameFn func(ctx context.Context, email, name string) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) UpdateName(ctx context.Context, email, name string) error {
	if f.updateNameFn != nil {
		return f.updateNameFn(ctx, email, name)
	}
	return nil
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success hr gets the starter subscription", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.createFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, user.RoleHR, u.Role)
			assert.Equal(t, "hr@acme.test", u.HREmail)
			assert.Equal(t, user.DefaultSubscriptionTier, u.SubscriptionTier)
			assert.Equal(t, user.DefaultPackageLimit, u.PackageLimit)
			assert.Equal(t, 0, u.CurrentEmployees)
			assert.NotEqual(t, "secret123", u.PasswordHash)
			return nil
		}

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:        "Morgan",
			Email:       "hr@acme.test",
			Password:    "secret123",
			Role:        user.RoleHR,
			DateOfBirth: "1990-05-20",
			CompanyName: "Acme",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.RoleHR, resp.Role)
		assert.Equal(t, "Acme", resp.CompanyName)
		assert.Equal(t, user.DefaultPackageLimit, resp.PackageLimit)
	})

	t.Run("success employee starts unaffiliated", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.createFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, user.RoleEmployee, u.Role)
			assert.Empty(t, u.CompanyName)
			assert.Empty(t, u.HREmail)
			assert.Zero(t, u.PackageLimit)
			return nil
		}

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name:        "Jordan",
			Email:       "emp@test.dev",
			Password:    "secret123",
			Role:        user.RoleEmployee,
			DateOfBirth: "1998-11-02",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.RoleEmployee, resp.Role)
		assert.Empty(t, resp.CompanyName)
	})

	t.Run("negative hr without company", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:        "Morgan",
			Email:       "hr@acme.test",
			Password:    "secret123",
			Role:        user.RoleHR,
			DateOfBirth: "1990-05-20",
		})

		assert.ErrorIs(t, err, autherrors.ErrCompanyRequired)
	})

	t.Run("negative malformed date of birth", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Name:        "Jordan",
			Email:       "emp@test.dev",
			Password:    "secret123",
			Role:        user.RoleEmployee,
			DateOfBirth: "02/11/1998",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidDateOfBirth)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	storedUser := func(password string) *user.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u := &user.User{
			Name:         "Morgan",
			Email:        "hr@acme.test",
			PasswordHash: string(hash),
			Role:         user.RoleHR,
			CompanyName:  "Acme",
		}
		return u
	}

	t.Run("success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return storedUser("secret123"), nil
		}

		resp, err := svc.Login(ctx, "hr@acme.test", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "hr@acme.test", resp.User.Email)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return storedUser("secret123"), nil
		}

		_, err := svc.Login(ctx, "hr@acme.test", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown account looks like bad credentials", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Login(ctx, "ghost@acme.test", "secret123")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success renames the caller only", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		renamed := ""
		repo.updateNameFn = func(ctx context.Context, email, name string) error {
			assert.Equal(t, "emp@test.dev", email)
			renamed = name
			return nil
		}
		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{Email: email, Name: renamed, Role: user.RoleEmployee}, nil
		}

		resp, err := svc.UpdateMe(ctx, "emp@test.dev", auth.UpdateProfileRequest{Name: "Jordan K"})

		assert.NoError(t, err)
		assert.Equal(t, "Jordan K", resp.Name)
		assert.Equal(t, user.RoleEmployee, resp.Role)
	})

	t.Run("negative unknown account", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.updateNameFn = func(ctx context.Context, email, name string) error {
			return nil
		}

		_, err := svc.UpdateMe(ctx, "ghost@test.dev", auth.UpdateProfileRequest{Name: "Ghost"})

		assert.Error(t, err)
	})
}

func TestAuthService_GetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo)

		repo.getByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{Email: email, Role: user.RoleEmployee}, nil
		}

		role, err := svc.GetRole(ctx, "emp@test.dev")

		assert.NoError(t, err)
		assert.Equal(t, user.RoleEmployee, role)
	})
}
