package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/domain"
	"leavesync/internal/shared/txutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_store.go -destination=mock/balance_store_mock.go -package=mock
type Store interface {
	WithTx(tx *sql.Tx) Store
	Get(ctx context.Context, employeeID uint) (Snapshot, error)
	// Debit fails with InsufficientBalance instead of going below zero.
	Debit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error
	// ForceDebit may drive the balance negative.
	ForceDebit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error
	Credit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error
	Reset(ctx context.Context, employeeID uint, sick, casual decimal.Decimal) error
}

type balanceRow struct {
	ID                  uint
	SickLeaveBalance    decimal.Decimal
	CasualLeaveBalance  decimal.Decimal
	MedicalLeaveBalance decimal.Decimal
	WorkFromHomeBalance decimal.Decimal
}

func (balanceRow) TableName() string {
	return "employees"
}

type store struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) WithTx(tx *sql.Tx) Store {
	return &store{db: s.db, tx: tx}
}

func (s *store) conn(ctx context.Context) *gorm.DB {
	return txutil.Bind(ctx, s.db, s.tx)
}

func (s *store) Get(ctx context.Context, employeeID uint) (Snapshot, error) {
	var row balanceRow
	err := s.conn(ctx).
		Select("id", "sick_leave_balance", "casual_leave_balance", "medical_leave_balance", "work_from_home_balance").
		Where("id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, balanceerrors.ErrEmployeeNotFound
		}
		return Snapshot{}, err
	}
	return Snapshot{
		EmployeeID:   row.ID,
		Sick:         row.SickLeaveBalance,
		Casual:       row.CasualLeaveBalance,
		Medical:      row.MedicalLeaveBalance,
		WorkFromHome: row.WorkFromHomeBalance,
	}, nil
}

func (s *store) Debit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	return s.debit(ctx, employeeID, leaveType, days, false)
}

func (s *store) ForceDebit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	return s.debit(ctx, employeeID, leaveType, days, true)
}

func (s *store) debit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal, allowNegative bool) error {
	col, ok := Column(leaveType)
	if !ok {
		return balanceerrors.ErrUnknownLeaveType
	}
	if !days.IsPositive() {
		return balanceerrors.ErrInvalidAmount
	}

	q := s.conn(ctx).Model(&balanceRow{}).Where("id = ?", employeeID)
	if !allowNegative {
		q = q.Where(col+" >= ?", days)
	}
	res := q.Update(col, gorm.Expr(col+" - ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Zero rows: either the employee is gone or the guard refused the debit.
	if _, err := s.Get(ctx, employeeID); err != nil {
		return err
	}
	return balanceerrors.InsufficientBalance(leaveType)
}

func (s *store) Credit(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	col, ok := Column(leaveType)
	if !ok {
		return balanceerrors.ErrUnknownLeaveType
	}
	if !days.IsPositive() {
		return balanceerrors.ErrInvalidAmount
	}

	res := s.conn(ctx).Model(&balanceRow{}).
		Where("id = ?", employeeID).
		Update(col, gorm.Expr(col+" + ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return balanceerrors.ErrEmployeeNotFound
	}
	return nil
}

func (s *store) Reset(ctx context.Context, employeeID uint, sick, casual decimal.Decimal) error {
	res := s.conn(ctx).Model(&balanceRow{}).
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"sick_leave_balance":   sick,
			"casual_leave_balance": casual,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return balanceerrors.ErrEmployeeNotFound
	}
	return nil
}
