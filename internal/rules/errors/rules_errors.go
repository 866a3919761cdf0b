package ruleserrors

import (
	"net/http"

	"leavesync/internal/shared/apperror"
)

var (
	ErrSandwichCapReached = apperror.New(
		apperror.CodeInvalidInput,
		"Max 2 Sandwich leaves allowed in 4 months.",
		http.StatusBadRequest,
	)
	ErrSandwichNotice = apperror.New(
		apperror.CodeInvalidInput,
		"Sandwich leaves require 7 days notice.",
		http.StatusBadRequest,
	)
	ErrMedicalProofRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Medical leave > 3 days requires a doctor's note (proof_url).",
		http.StatusBadRequest,
	)
)
