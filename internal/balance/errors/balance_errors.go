package balanceerrors

import (
	"net/http"

	"leavesync/internal/domain"
	"leavesync/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be greater than zero",
		http.StatusBadRequest,
	)
)

// InsufficientBalance is the rejection for a debit or quota check on leaveType.
func InsufficientBalance(leaveType domain.LeaveType) *apperror.AppError {
	return apperror.Newf(
		apperror.CodeInvalidInput,
		http.StatusBadRequest,
		"Insufficient %s leave balance.", leaveType,
	)
}
