package leaveerrors

import (
	"errors"
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

// Validation sub-kinds carried in details.sub_kind of VALIDATION_FAILED.
const (
	SubKindDateRange           = "date_range"
	SubKindBeforeJoinDate      = "before_join_date"
	SubKindRetirementWindow    = "retirement_window"
	SubKindMinDays             = "min_days"
	SubKindSpellLimit          = "spell_limit"
	SubKindNoticePeriod        = "notice_period"
	SubKindCertificateRequired = "certificate_required"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrRequesterNotFound = apperror.New(
		apperror.CodeNotFound,
		"requester not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusConflict,
	)
	ErrNotFinalStage = apperror.New(
		apperror.CodeInvalidState,
		"only the final approver can approve, forward instead",
		http.StatusConflict,
	)
	ErrFinalStage = apperror.New(
		apperror.CodeInvalidState,
		"the final approver cannot forward, approve or reject instead",
		http.StatusConflict,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comment is required",
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "comment"})
	ErrNotCurrentApprover = apperror.New(
		apperror.CodeNotCurrentApprover,
		"you are not the approver of the current step",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeAlreadyDecided,
		"this step has already been decided",
		http.StatusConflict,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester can perform this action",
		http.StatusForbidden,
	)
	ErrOwnRequest = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide on your own request",
		http.StatusForbidden,
	)
)

func validation(subKind, message string) *apperror.AppError {
	return apperror.New(apperror.CodeValidationFailed, message, http.StatusUnprocessableEntity).
		WithDetails(map[string]string{"sub_kind": subKind})
}

var (
	ErrDateRange           = validation(SubKindDateRange, "end date must not be before start date and the range must contain a leave day")
	ErrBeforeJoinDate      = validation(SubKindBeforeJoinDate, "leave cannot start before the joining date")
	ErrRetirementWindow    = validation(SubKindRetirementWindow, "leave falls inside the pre-retirement window for this type")
	ErrMinDays             = validation(SubKindMinDays, "request is shorter than the minimum for this leave type")
	ErrSpellLimit          = validation(SubKindSpellLimit, "request exceeds the consecutive-day limit for this leave type")
	ErrNoticePeriod        = validation(SubKindNoticePeriod, "request does not meet the notice period for this leave type")
	ErrCertificateRequired = validation(SubKindCertificateRequired, "a supporting certificate is required for this request")
)

// SubKind returns the validation sub-kind of err, or "" when err is not a
// validation failure.
func SubKind(err error) string {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeValidationFailed {
		return ""
	}
	if d, ok := appErr.Details.(map[string]string); ok {
		return d["sub_kind"]
	}
	return ""
}
