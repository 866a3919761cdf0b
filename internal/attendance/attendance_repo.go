package attendance

import (
	"context"
	"database/sql"
	"time"

	"leavesync/internal/domain"
	"leavesync/internal/shared/txutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	ListByEmployee(ctx context.Context, employeeID uint, limit int) ([]Attendance, error)
	ListAll(ctx context.Context, limit int) ([]Attendance, error)
	// UpsertDays inserts rows or overwrites the existing (employee, date) row.
	UpsertDays(ctx context.Context, rows []Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(domain.DateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uint, limit int) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAll(ctx context.Context, limit int) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Preload("Employee").
		Order("date DESC, check_in DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertDays(ctx context.Context, rows []Attendance) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).
		Omit("Employee").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "check_in", "check_out", "hours_worked", "is_late", "notes", "updated_at"}),
		}).
		Create(&rows).Error
}
