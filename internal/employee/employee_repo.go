package employee

import (
	"context"
	"database/sql"
	"time"

	"leavesync/internal/shared/txutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	// FindByResetToken does not check expiry; callers compare ResetTokenExpiry.
	FindByResetToken(ctx context.Context, token string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByRoles(ctx context.Context, roles ...string) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error
	// UpdatePassword stores the new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txutil.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).Where("LOWER(email) = LOWER(?)", email).First(&empl).Error
	return &empl, err
}

func (r *repository) FindByResetToken(ctx context.Context, token string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).Where("reset_token = ?", token).First(&empl).Error
	return &empl, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).Order("name ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByRoles(ctx context.Context, roles ...string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).Where("role IN ?", roles).Order("id ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.conn(ctx).Model(&Employee{}).Count(&total).Error
	return total, err
}

func (r *repository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	res := r.conn(ctx).Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.conn(ctx).Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        gorm.Expr("NULL"),
			"reset_token_expiry": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
