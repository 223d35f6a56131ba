package subscription

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=subscription_repo.go -destination=mock/subscription_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EnsureDefaultPackages(ctx context.Context, packages []Package) error
	ListPackages(ctx context.Context) ([]Package, error)
	FindPackageByID(ctx context.Context, id string) (*Package, error)
	CreateSession(ctx context.Context, s *CheckoutSession) error
	FindSessionByID(ctx context.Context, id string) (*CheckoutSession, error)
	CompleteSessionIfPending(ctx context.Context, id string) (bool, error)
	CreatePayment(ctx context.Context, p *Payment) error
	ListPaymentsByCustomer(ctx context.Context, customerEmail string) ([]Payment, error)
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

// EnsureDefaultPackages seeds the tier catalog on startup. Existing rows keep
// their ids; only missing names are inserted.
func (r *repository) EnsureDefaultPackages(ctx context.Context, packages []Package) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&packages).Error
}

func (r *repository) ListPackages(ctx context.Context) ([]Package, error) {
	var packages []Package
	err := r.db.WithContext(ctx).Order("employee_limit").Find(&packages).Error
	return packages, err
}

func (r *repository) FindPackageByID(ctx context.Context, id string) (*Package, error) {
	var p Package
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) CreateSession(ctx context.Context, s *CheckoutSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindSessionByID(ctx context.Context, id string) (*CheckoutSession, error) {
	var s CheckoutSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

// CompleteSessionIfPending flips the session exactly once, so a replayed
// confirmation cannot record a second payment.
func (r *repository) CompleteSessionIfPending(ctx context.Context, id string) (bool, error) {
	exec, err := r.execer()
	if err != nil {
		return false, err
	}

	res, err := exec.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, SessionStatusCompleted, id, SessionStatusPending)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) CreatePayment(ctx context.Context, p *Payment) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO payments (id, customer_email, package_name, amount, transaction_id, created_at)
			VALUES ($1, $2, $3, $4, $5, now())
		`, p.ID, p.CustomerEmail, p.PackageName, p.Amount, p.TransactionID)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) ListPaymentsByCustomer(ctx context.Context, customerEmail string) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", customerEmail).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
