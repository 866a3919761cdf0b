package penalty

import (
	"context"
	"database/sql"

	"leavesync/internal/shared/txutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=penalty_repo.go -destination=mock/penalty_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Penalty) error
	FindByID(ctx context.Context, id uint) (*Penalty, error)
	// List filters by employee when employeeID is non-nil, newest applied first.
	List(ctx context.Context, employeeID *uint) ([]Penalty, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txutil.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Penalty) error {
	return r.conn(ctx).Omit("Employee").Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Penalty, error) {
	var p Penalty
	err := r.conn(ctx).Preload("Employee").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) List(ctx context.Context, employeeID *uint) ([]Penalty, error) {
	q := r.conn(ctx).Preload("Employee").Order("applied_date DESC, id DESC")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	var rows []Penalty
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.conn(ctx).Model(&Penalty{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).Delete(&Penalty{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
