// Package balance owns the per-employee leave balance columns. Every mutation
// is a single conditional UPDATE so concurrent debits cannot overdraw.
package balance

import (
	"leavesync/internal/domain"

	"github.com/shopspring/decimal"
)

type Snapshot struct {
	EmployeeID   uint
	Sick         decimal.Decimal
	Casual       decimal.Decimal
	Medical      decimal.Decimal
	WorkFromHome decimal.Decimal
}

// Of returns the stored value for leaveType.
func (s Snapshot) Of(leaveType domain.LeaveType) (decimal.Decimal, bool) {
	switch leaveType {
	case domain.LeaveSick:
		return s.Sick, true
	case domain.LeaveCasual:
		return s.Casual, true
	case domain.LeaveMedical:
		return s.Medical, true
	case domain.LeaveWorkFromHome:
		return s.WorkFromHome, true
	}
	return decimal.Zero, false
}

// Column maps a leave type to its balance column on employees.
func Column(leaveType domain.LeaveType) (string, bool) {
	switch leaveType {
	case domain.LeaveSick:
		return "sick_leave_balance", true
	case domain.LeaveCasual:
		return "casual_leave_balance", true
	case domain.LeaveMedical:
		return "medical_leave_balance", true
	case domain.LeaveWorkFromHome:
		return "work_from_home_balance", true
	}
	return "", false
}
