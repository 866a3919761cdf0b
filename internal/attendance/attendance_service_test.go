package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"leavesync/internal/attendance"
	attendanceerrors "leavesync/internal/attendance/errors"
	"leavesync/internal/rules"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	createFn                func(ctx context.Context, a *attendance.Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error)
	updateFn                func(ctx context.Context, a *attendance.Attendance) error
	listByEmployeeFn        func(ctx context.Context, employeeID uint, limit int) ([]attendance.Attendance, error)
	listAllFn               func(ctx context.Context, limit int) ([]attendance.Attendance, error)
	upsertDaysFn            func(ctx context.Context, rows []attendance.Attendance) error
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	a.ID = 1
	return nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) ListByEmployee(ctx context.Context, employeeID uint, limit int) ([]attendance.Attendance, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeID, limit)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) ListAll(ctx context.Context, limit int) ([]attendance.Attendance, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) UpsertDays(ctx context.Context, rows []attendance.Attendance) error {
	if f.upsertDaysFn != nil {
		return f.upsertDaysFn(ctx, rows)
	}
	return nil
}

type fakePenaltyIssuer struct {
	calls int
	days  decimal.Decimal
	err   error
}

func (f *fakePenaltyIssuer) IssueLatePenalty(ctx context.Context, employeeID uint, days decimal.Decimal, checkIn time.Time) error {
	f.calls++
	f.days = days
	return f.err
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func clockAt(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	}
}

func newService(t *testing.T, repo attendance.Repository, opts attendance.Options) (attendance.Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	if opts.Lateness.Location == nil {
		opts.Lateness = rules.DefaultLatenessPolicy(time.UTC)
	}
	return attendance.NewService(db, repo, opts), mock, db
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("on time within grace", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}
		var created *attendance.Attendance
		repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			a.ID = 10
			return nil
		}
		svc, mock, db := newService(t, repo, attendance.Options{Now: clockAt(9, 14)})
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.CheckIn(ctx, 7, attendance.CheckInRequest{})
		assert.NoError(t, err)
		assert.False(t, resp.IsLate)
		assert.Equal(t, "2026-03-02", resp.Date)
		assert.Equal(t, attendance.StatusPresent, created.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("late after grace issues penalty when enabled", func(t *testing.T) {
		issuer := &fakePenaltyIssuer{}
		svc, mock, db := newService(t, &fakeAttendanceRepository{}, attendance.Options{
			Now:             clockAt(9, 16),
			AutoLatePenalty: true,
			Penalties:       issuer,
		})
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.CheckIn(ctx, 7, attendance.CheckInRequest{})
		assert.NoError(t, err)
		assert.True(t, resp.IsLate)
		assert.Equal(t, 1, issuer.calls)
		assert.True(t, decimal.RequireFromString("0.25").Equal(issuer.days))
	})

	t.Run("late without auto penalty only flags", func(t *testing.T) {
		issuer := &fakePenaltyIssuer{}
		svc, mock, db := newService(t, &fakeAttendanceRepository{}, attendance.Options{
			Now:       clockAt(10, 0),
			Penalties: issuer,
		})
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.CheckIn(ctx, 7, attendance.CheckInRequest{})
		assert.NoError(t, err)
		assert.True(t, resp.IsLate)
		assert.Equal(t, 0, issuer.calls)
	})

	t.Run("penalty failure does not fail check-in", func(t *testing.T) {
		issuer := &fakePenaltyIssuer{err: errors.New("db down")}
		svc, mock, db := newService(t, &fakeAttendanceRepository{}, attendance.Options{
			Now:             clockAt(11, 0),
			AutoLatePenalty: true,
			Penalties:       issuer,
		})
		defer db.Close()
		expectTx(t, mock, true)

		_, err := svc.CheckIn(ctx, 7, attendance.CheckInRequest{})
		assert.NoError(t, err)
		assert.Equal(t, 1, issuer.calls)
	})

	t.Run("already checked in", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: 3, EmployeeID: employeeID}, nil
		}
		svc, mock, db := newService(t, repo, attendance.Options{Now: clockAt(9, 0)})
		defer db.Close()
		expectTx(t, mock, false)

		_, err := svc.CheckIn(ctx, 7, attendance.CheckInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("without check-in", func(t *testing.T) {
		svc, mock, db := newService(t, &fakeAttendanceRepository{}, attendance.Options{Now: clockAt(17, 0)})
		defer db.Close()
		expectTx(t, mock, false)

		_, err := svc.CheckOut(ctx, 7, attendance.CheckOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})

	t.Run("full day", func(t *testing.T) {
		in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		repo := &fakeAttendanceRepository{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: 3, EmployeeID: employeeID, CheckIn: &in, Status: attendance.StatusPresent}, nil
		}
		svc, mock, db := newService(t, repo, attendance.Options{Now: clockAt(17, 30)})
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.CheckOut(ctx, 7, attendance.CheckOutRequest{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "8.5", resp.HoursWorked.String())
	})

	t.Run("under four hours is half day", func(t *testing.T) {
		in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		repo := &fakeAttendanceRepository{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: 3, EmployeeID: employeeID, CheckIn: &in, Status: attendance.StatusPresent}, nil
		}
		svc, mock, db := newService(t, repo, attendance.Options{Now: clockAt(12, 0)})
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.CheckOut(ctx, 7, attendance.CheckOutRequest{})
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusHalfDay, resp.Status)
	})

	t.Run("second check-out rejected", func(t *testing.T) {
		in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
		repo := &fakeAttendanceRepository{}
		repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID uint, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: 3, CheckIn: &in, CheckOut: &out}, nil
		}
		svc, mock, db := newService(t, repo, attendance.Options{Now: clockAt(18, 0)})
		defer db.Close()
		expectTx(t, mock, false)

		_, err := svc.CheckOut(ctx, 7, attendance.CheckOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})
}

func TestAttendanceService_HistoryLimits(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	var historyLimit, allLimit int
	repo.listByEmployeeFn = func(ctx context.Context, employeeID uint, limit int) ([]attendance.Attendance, error) {
		historyLimit = limit
		return []attendance.Attendance{{ID: 1, EmployeeID: employeeID, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}}, nil
	}
	repo.listAllFn = func(ctx context.Context, limit int) ([]attendance.Attendance, error) {
		allLimit = limit
		dept := "Engineering"
		return []attendance.Attendance{{
			ID:       2,
			Employee: &attendance.EmployeeRef{ID: 9, Name: "Asha", EmployeeCode: "EMP009", Department: &dept},
		}}, nil
	}
	svc, _, db := newService(t, repo, attendance.Options{})
	defer db.Close()

	history, err := svc.History(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, 30, historyLimit)

	all, err := svc.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 100, allLimit)
	assert.Equal(t, "Asha", all[0].EmployeeName)
}

func TestWorkFromHomeDays(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	rows := attendance.WorkFromHomeDays(7, start, end, time.UTC)
	assert.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, start.AddDate(0, 0, i), r.Date)
		assert.Equal(t, 9, r.CheckIn.Hour())
		assert.Equal(t, 17, r.CheckOut.Hour())
		assert.Equal(t, attendance.WorkFromHomeNote, *r.Notes)
		assert.True(t, decimal.NewFromInt(8).Equal(r.HoursWorked))
	}

	assert.Len(t, attendance.WorkFromHomeDays(7, start, start, time.UTC), 1)
}

func TestWorkFromHomeDays_DaylightSavingTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// clocks spring forward at 02:00 on 2025-03-09
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)

	rows := attendance.WorkFromHomeDays(7, start, end, loc)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 9, r.CheckIn.Hour())
		assert.Equal(t, 0, r.CheckIn.Minute())
		assert.Equal(t, 17, r.CheckOut.Hour())
		assert.Equal(t, r.Date.Day(), r.CheckIn.Day())
	}
	assert.Equal(t, 9, rows[1].Date.Day())
}
