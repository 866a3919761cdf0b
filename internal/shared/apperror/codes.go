package apperror

const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"
	// CodeProcessing marks a duplicate of an idempotent request still in flight.
	CodeProcessing = "PROCESSING"

	CodeInternalError = "INTERNAL_ERROR"
)
