package penalty_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leavesync/internal/balance"
	"leavesync/internal/balance/balancetest"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/penalty"
	penaltyerrors "leavesync/internal/penalty/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakePenaltyRepository struct {
	createFn       func(ctx context.Context, p *penalty.Penalty) error
	findByIDFn     func(ctx context.Context, id uint) (*penalty.Penalty, error)
	listFn         func(ctx context.Context, employeeID *uint) ([]penalty.Penalty, error)
	updateStatusFn func(ctx context.Context, id uint, status string) (int64, error)
	deleteFn       func(ctx context.Context, id uint) (int64, error)
}

func (f *fakePenaltyRepository) WithTx(tx *sql.Tx) penalty.Repository {
	return f
}

func (f *fakePenaltyRepository) Create(ctx context.Context, p *penalty.Penalty) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	p.ID = 1
	return nil
}

func (f *fakePenaltyRepository) FindByID(ctx context.Context, id uint) (*penalty.Penalty, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &penalty.Penalty{ID: id}, nil
}

func (f *fakePenaltyRepository) List(ctx context.Context, employeeID *uint) ([]penalty.Penalty, error) {
	if f.listFn != nil {
		return f.listFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePenaltyRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return 1, nil
}

func (f *fakePenaltyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
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

func setup(t *testing.T, repo *fakePenaltyRepository, casual string) (penalty.Service, *balancetest.MemoryStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	store := balancetest.NewMemoryStore(balance.Snapshot{
		EmployeeID:   7,
		Sick:         decimal.NewFromInt(7),
		Casual:       decimal.RequireFromString(casual),
		WorkFromHome: decimal.NewFromInt(5),
	})
	return penalty.NewService(db, repo, store, time.UTC), store, mock, db
}

func TestPenaltyService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("debits casual and may go negative", func(t *testing.T) {
		repo := &fakePenaltyRepository{}
		var created *penalty.Penalty
		repo.createFn = func(ctx context.Context, p *penalty.Penalty) error {
			created = p
			p.ID = 11
			return nil
		}
		svc, store, mock, db := setup(t, repo, "0.5")
		defer db.Close()
		expectTx(t, mock, true)

		resp, err := svc.Issue(ctx, 2, penalty.IssuePenaltyRequest{
			EmployeeID:  7,
			PenaltyType: "disciplinary",
			Description: "Repeated no-show",
			PenaltyDays: decimal.NewFromInt(1),
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(11), resp.ID)
		assert.Equal(t, penalty.StatusActive, resp.Status)
		assert.Equal(t, uint(2), *created.IssuedBy)
		assert.True(t, decimal.RequireFromString("-0.5").Equal(store.MustGet(7).Casual))
		assert.True(t, decimal.NewFromInt(7).Equal(store.MustGet(7).Sick))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee rolls back", func(t *testing.T) {
		svc, _, mock, db := setup(t, &fakePenaltyRepository{}, "7")
		defer db.Close()
		expectTx(t, mock, false)

		_, err := svc.Issue(ctx, 2, penalty.IssuePenaltyRequest{
			EmployeeID:  99,
			PenaltyType: "other",
			PenaltyDays: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid type", func(t *testing.T) {
		svc, _, _, db := setup(t, &fakePenaltyRepository{}, "7")
		defer db.Close()

		_, err := svc.Issue(ctx, 2, penalty.IssuePenaltyRequest{EmployeeID: 7, PenaltyType: "speeding", PenaltyDays: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidPenaltyType)
	})

	t.Run("non-positive days", func(t *testing.T) {
		svc, _, _, db := setup(t, &fakePenaltyRepository{}, "7")
		defer db.Close()

		_, err := svc.Issue(ctx, 2, penalty.IssuePenaltyRequest{EmployeeID: 7, PenaltyType: "other"})
		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidPenaltyDays)
	})

	t.Run("create failure rolls back", func(t *testing.T) {
		repo := &fakePenaltyRepository{createFn: func(ctx context.Context, p *penalty.Penalty) error {
			return errors.New("insert failed")
		}}
		svc, store, mock, db := setup(t, repo, "7")
		defer db.Close()
		expectTx(t, mock, false)

		_, err := svc.Issue(ctx, 2, penalty.IssuePenaltyRequest{EmployeeID: 7, PenaltyType: "other", PenaltyDays: decimal.NewFromInt(1)})
		assert.Error(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(store.MustGet(7).Casual))
	})
}

func TestPenaltyService_IssueLatePenalty(t *testing.T) {
	repo := &fakePenaltyRepository{}
	var created *penalty.Penalty
	repo.createFn = func(ctx context.Context, p *penalty.Penalty) error {
		created = p
		return nil
	}
	svc, store, mock, db := setup(t, repo, "7")
	defer db.Close()
	expectTx(t, mock, true)

	checkIn := time.Date(2026, 3, 2, 9, 40, 0, 0, time.UTC)
	err := svc.IssueLatePenalty(context.Background(), 7, decimal.RequireFromString("0.25"), checkIn)
	assert.NoError(t, err)
	assert.Equal(t, penalty.TypeLateArrival, created.PenaltyType)
	assert.Nil(t, created.IssuedBy)
	assert.Equal(t, "Late check-in at 09:40", created.Description)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), created.AppliedDate)
	assert.True(t, decimal.RequireFromString("6.75").Equal(store.MustGet(7).Casual))
}

func TestPenaltyService_List(t *testing.T) {
	var seen *uint
	repo := &fakePenaltyRepository{listFn: func(ctx context.Context, employeeID *uint) ([]penalty.Penalty, error) {
		seen = employeeID
		return []penalty.Penalty{{ID: 1, EmployeeID: 7}}, nil
	}}
	svc, _, _, db := setup(t, repo, "7")
	defer db.Close()

	other := uint(9)
	_, err := svc.List(context.Background(), 7, false, &other)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), *seen)

	_, err = svc.List(context.Background(), 1, true, nil)
	assert.NoError(t, err)
	assert.Nil(t, seen)

	_, err = svc.List(context.Background(), 1, true, &other)
	assert.NoError(t, err)
	assert.Equal(t, uint(9), *seen)
}

func TestPenaltyService_UpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("resolve keeps balance", func(t *testing.T) {
		repo := &fakePenaltyRepository{}
		svc, store, _, db := setup(t, repo, "6")
		defer db.Close()

		_, err := svc.UpdateStatus(ctx, 3, "resolved")
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(6).Equal(store.MustGet(7).Casual))
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _, _, db := setup(t, &fakePenaltyRepository{}, "7")
		defer db.Close()

		_, err := svc.UpdateStatus(ctx, 3, "waived")
		assert.ErrorIs(t, err, penaltyerrors.ErrInvalidPenaltyStatus)
	})

	t.Run("missing penalty", func(t *testing.T) {
		repo := &fakePenaltyRepository{
			updateStatusFn: func(ctx context.Context, id uint, status string) (int64, error) { return 0, nil },
			deleteFn:       func(ctx context.Context, id uint) (int64, error) { return 0, nil },
		}
		svc, _, _, db := setup(t, repo, "7")
		defer db.Close()

		_, err := svc.UpdateStatus(ctx, 3, "active")
		assert.ErrorIs(t, err, penaltyerrors.ErrPenaltyNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 3), penaltyerrors.ErrPenaltyNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		svc, _, _, db := setup(t, &fakePenaltyRepository{}, "7")
		defer db.Close()
		assert.NoError(t, svc.Delete(ctx, 3))
	})
}
