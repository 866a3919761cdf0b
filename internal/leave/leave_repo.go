package leave

import (
	"context"
	"database/sql"
	"time"

	"leavesync/internal/shared/txutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uint) (*Leave, error)
	// FindByIDForUpdate row-locks the leave until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*Leave, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]Leave, error)
	ListAll(ctx context.Context) ([]Leave, error)
	ListPending(ctx context.Context) ([]Leave, error)
	// UpdateDecision only touches a leave that is still pending and returns
	// the number of rows changed.
	UpdateDecision(ctx context.Context, l *Leave) (int64, error)
	HasOverlappingPeriod(ctx context.Context, employeeID uint, startDate, endDate time.Time) (bool, error)
	CountApprovedSandwich(ctx context.Context, employeeID uint, since time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uint) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListPending(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("Employee").
		Where("status = ?", string(StatusPending)).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateDecision(ctx context.Context, l *Leave) (int64, error) {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", l.ID, string(StatusPending)).
		Updates(map[string]any{
			"status":           string(l.Status),
			"rejection_reason": l.RejectionReason,
			"approved_by":      l.ApprovedBy,
			"approved_at":      l.ApprovedAt,
			"updated_at":       time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID uint, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{string(StatusPending), string(StatusApproved)}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountApprovedSandwich(ctx context.Context, employeeID uint, since time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("is_sandwich = ?", true).
		Where("status = ?", string(StatusApproved)).
		Where("start_date >= ?", since).
		Count(&count).Error
	return count, err
}
