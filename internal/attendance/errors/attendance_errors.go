package attendanceerrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in today.",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Cannot check out without checking in.",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Already checked out today.",
		http.StatusConflict,
	)
)
