package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "leavesync/internal/attendance/errors"
	"leavesync/internal/domain"
	"leavesync/internal/rules"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	historyLimit = 30
	listAllLimit = 100
)

var halfDayHours = decimal.NewFromInt(4)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID uint, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID uint, req CheckOutRequest) (AttendanceResponse, error)
	History(ctx context.Context, employeeID uint) ([]AttendanceResponse, error)
	ListAll(ctx context.Context) ([]AttendanceResponse, error)
	Today(ctx context.Context, employeeID uint) (*AttendanceResponse, error)
}

// LatePenaltyIssuer records a late_arrival penalty for a committed check-in.
type LatePenaltyIssuer interface {
	IssueLatePenalty(ctx context.Context, employeeID uint, days decimal.Decimal, checkIn time.Time) error
}

type Options struct {
	Lateness        rules.LatenessPolicy
	AutoLatePenalty bool
	Penalties       LatePenaltyIssuer
	Now             func() time.Time
}

type service struct {
	db     *sql.DB
	repo   Repository
	opts   Options
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	if opts.Lateness.Location == nil {
		opts.Lateness = rules.DefaultLatenessPolicy(time.Local)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, opts: opts, logger: l}
}

func (s *service) today(now time.Time) time.Time {
	local := now.In(s.opts.Lateness.Location)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.opts.Lateness.Location)
}

func (s *service) CheckIn(ctx context.Context, employeeID uint, req CheckInRequest) (AttendanceResponse, error) {
	s.logger.Debug("check-in requested", zap.Uint("employee_id", employeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.opts.Now()
	today := s.today(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		s.logger.Warn("already checked in", zap.Uint("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to load attendance", zap.Uint("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     StatusPresent,
		IsLate:     s.opts.Lateness.IsLate(now),
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("failed to create attendance", zap.Uint("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit check-in", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if row.IsLate && s.opts.AutoLatePenalty && s.opts.Penalties != nil {
		days := s.opts.Lateness.Penalty(now)
		if err := s.opts.Penalties.IssueLatePenalty(ctx, employeeID, days, now); err != nil {
			// The check-in already committed; the penalty can be issued manually.
			s.logger.Error("failed to issue late penalty", zap.Uint("employee_id", employeeID), zap.Error(err))
		}
	}

	s.logger.Info("checked in",
		zap.Uint("employee_id", employeeID),
		zap.Uint("attendance_id", row.ID),
		zap.Bool("is_late", row.IsLate),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID uint, req CheckOutRequest) (AttendanceResponse, error) {
	s.logger.Debug("check-out requested", zap.Uint("employee_id", employeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.opts.Now()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, s.today(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("check-out without check-in", zap.Uint("employee_id", employeeID))
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		s.logger.Error("failed to load attendance", zap.Uint("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		s.logger.Warn("already checked out", zap.Uint("employee_id", employeeID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	hours := WorkedHours(*row.CheckIn, now)
	row.CheckOut = &now
	row.HoursWorked = hours
	row.Status = StatusPresent
	if hours.LessThan(halfDayHours) {
		row.Status = StatusHalfDay
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("failed to update attendance", zap.Uint("attendance_id", row.ID), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit check-out", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked out",
		zap.Uint("employee_id", employeeID),
		zap.String("hours_worked", hours.String()),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) History(ctx context.Context, employeeID uint) ([]AttendanceResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID, historyLimit)
	if err != nil {
		s.logger.Error("failed to list attendance", zap.Uint("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.ListAll(ctx, listAllLimit)
	if err != nil {
		s.logger.Error("failed to list attendance", zap.Error(err))
		return nil, err
	}
	return mapAll(rows), nil
}

// Today returns nil when the employee has no record for the current day.
func (s *service) Today(ctx context.Context, employeeID uint) (*AttendanceResponse, error) {
	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, s.today(s.opts.Now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*row)
	return &resp, nil
}

// WorkedHours is the elapsed time in hours rounded to two places.
func WorkedHours(in, out time.Time) decimal.Decimal {
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}

// WorkFromHomeDays builds one present row per calendar day in [start, end],
// checked in at 09:00 and out at 17:00 in loc.
func WorkFromHomeDays(employeeID uint, start, end time.Time, loc *time.Location) []Attendance {
	if loc == nil {
		loc = time.Local
	}
	note := WorkFromHomeNote
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	first := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
	last := time.Date(ey, em, ed, 0, 0, 0, 0, loc)

	var rows []Attendance
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		y, m, d := day.Date()
		in := time.Date(y, m, d, 9, 0, 0, 0, loc)
		out := time.Date(y, m, d, 17, 0, 0, 0, loc)
		rows = append(rows, Attendance{
			EmployeeID:  employeeID,
			Date:        day,
			CheckIn:     &in,
			CheckOut:    &out,
			Status:      StatusPresent,
			HoursWorked: decimal.NewFromInt(8),
			Notes:       &note,
		})
	}
	return rows
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapAll(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format(domain.DateLayout),
		Status:      a.Status,
		IsLate:      a.IsLate,
		HoursWorked: a.HoursWorked,
		Notes:       a.Notes,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
		resp.EmployeeCode = a.Employee.EmployeeCode
		resp.Department = a.Employee.Department
	}
	return resp
}
