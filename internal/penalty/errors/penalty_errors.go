package penaltyerrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrPenaltyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Penalty not found",
		http.StatusNotFound,
	)
	ErrInvalidPenaltyType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid penalty type",
		http.StatusBadRequest,
	)
	ErrInvalidPenaltyStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid penalty status",
		http.StatusBadRequest,
	)
	ErrInvalidPenaltyDays = apperror.New(
		apperror.CodeInvalidInput,
		"penalty_days must be greater than zero",
		http.StatusBadRequest,
	)
)
