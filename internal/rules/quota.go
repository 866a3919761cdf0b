// Package rules holds the leave and attendance policies. Policies only read
// state; callers decide what to mutate.
package rules

import (
	"context"
	"errors"

	"leavesync/internal/balance"
	balanceerrors "leavesync/internal/balance/errors"
	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
)

type BalanceReader interface {
	Get(ctx context.Context, employeeID uint) (balance.Snapshot, error)
}

// QuotaValidator answers whether an employee has enough balance for a request.
// medical_leave_balance counts days used, so medical remaining is the
// configured allowance minus that counter.
type QuotaValidator struct {
	balances         BalanceReader
	medicalAllowance decimal.Decimal
}

func NewQuotaValidator(balances BalanceReader, medicalAllowance decimal.Decimal) *QuotaValidator {
	return &QuotaValidator{balances: balances, medicalAllowance: medicalAllowance}
}

// HasQuota reports balance >= days. Unknown employees and leave types are (false, nil).
func (v *QuotaValidator) HasQuota(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) (bool, error) {
	snap, err := v.balances.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, balanceerrors.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}

	remaining, ok := v.Remaining(snap, leaveType)
	if !ok {
		return false, nil
	}
	return remaining.GreaterThanOrEqual(days), nil
}

// Check is HasQuota with the user-facing rejection.
func (v *QuotaValidator) Check(ctx context.Context, employeeID uint, leaveType domain.LeaveType, days decimal.Decimal) error {
	ok, err := v.HasQuota(ctx, employeeID, leaveType, days)
	if err != nil {
		return err
	}
	if !ok {
		return balanceerrors.InsufficientBalance(leaveType)
	}
	return nil
}

func (v *QuotaValidator) Remaining(snap balance.Snapshot, leaveType domain.LeaveType) (decimal.Decimal, bool) {
	if leaveType == domain.LeaveMedical {
		return v.medicalAllowance.Sub(snap.Medical), true
	}
	return snap.Of(leaveType)
}
