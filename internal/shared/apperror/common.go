package apperror

import "net/http"

var (
	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidID = New(
		CodeInvalidInput,
		"invalid id",
		http.StatusBadRequest,
	)

	ErrRequestInFlight = New(
		CodeProcessing,
		"Your request is already being processed, please wait.",
		http.StatusConflict,
	)
)

// TooManyRequests names who is being throttled, e.g. "IP" or "user".
func TooManyRequests(subject string) *AppError {
	return New(CodeRateLimited, "Too many requests from this "+subject, http.StatusTooManyRequests)
}
