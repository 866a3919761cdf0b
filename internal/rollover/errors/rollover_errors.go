package rollovererrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrAlreadyExecuted = apperror.New(
		apperror.CodeConflict,
		"Rollover has already been executed for this year",
		http.StatusConflict,
	)
	ErrInProgress = apperror.New(
		apperror.CodeConflict,
		"Rollover is already running",
		http.StatusConflict,
	)
)
