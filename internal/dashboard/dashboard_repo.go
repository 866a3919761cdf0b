package dashboard

import (
	"context"
	"time"

	"leavesync/internal/attendance"
	"leavesync/internal/domain"
	"leavesync/internal/employee"
	"leavesync/internal/leave"
	"leavesync/internal/penalty"

	"gorm.io/gorm"
)

// presentStatuses count towards attendance; "late" is kept for rows written by older clients.
var presentStatuses = []string{attendance.StatusPresent, attendance.StatusHalfDay, "late"}

type DayCount struct {
	Present int64
	Late    int64
}

type LeaveActivity struct {
	Name      string
	LeaveType domain.LeaveType
	CreatedAt time.Time
}

type AttendanceActivity struct {
	Name     string
	CheckIn  *time.Time
	CheckOut *time.Time
}

type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountPendingLeaves(ctx context.Context) (int64, error)
	CountActivePenalties(ctx context.Context) (int64, error)
	AttendanceOn(ctx context.Context, day time.Time) (DayCount, error)
	LatestLeaves(ctx context.Context, limit int) ([]LeaveActivity, error)
	LatestCheckIns(ctx context.Context, limit int) ([]AttendanceActivity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) count(ctx context.Context, table, column string, value any) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(table).Where(column+" = ?", value).Count(&n).Error
	return n, err
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, "employees", "role", employee.RoleEmployee)
}

func (r *repository) CountPendingLeaves(ctx context.Context) (int64, error) {
	return r.count(ctx, "leaves", "status", string(leave.StatusPending))
}

func (r *repository) CountActivePenalties(ctx context.Context) (int64, error) {
	return r.count(ctx, "penalties", "status", penalty.StatusActive)
}

func (r *repository) AttendanceOn(ctx context.Context, day time.Time) (DayCount, error) {
	var out DayCount
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("COUNT(*) FILTER (WHERE status IN ?) AS present, COUNT(*) FILTER (WHERE is_late) AS late", presentStatuses).
		Where("date = ?", day.Format(domain.DateLayout)).
		Scan(&out).Error
	return out, err
}

func (r *repository) LatestLeaves(ctx context.Context, limit int) ([]LeaveActivity, error) {
	var rows []LeaveActivity
	err := r.db.WithContext(ctx).
		Table("leaves AS l").
		Select("e.name, l.leave_type, l.created_at").
		Joins("JOIN employees e ON e.id = l.employee_id").
		Order("l.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) LatestCheckIns(ctx context.Context, limit int) ([]AttendanceActivity, error) {
	var rows []AttendanceActivity
	err := r.db.WithContext(ctx).
		Table("attendances AS a").
		Select("e.name, a.check_in, a.check_out").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Where("a.check_in IS NOT NULL").
		Order("a.check_in DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
