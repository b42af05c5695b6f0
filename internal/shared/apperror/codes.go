package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeNotCurrentApprover  = "NOT_CURRENT_APPROVER"
	CodeAlreadyDecided      = "ALREADY_DECIDED"
	CodeConflictingUpdate   = "CONFLICTING_UPDATE"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
