package holidayerrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a holiday is already defined for this date",
		http.StatusConflict,
	)
	ErrInvalidCalendar = apperror.New(
		apperror.CodeInvalidInput,
		"calendar file could not be parsed",
		http.StatusBadRequest,
	)
	ErrCalendarRequired = apperror.New(
		apperror.CodeInvalidInput,
		"calendar file is required",
		http.StatusBadRequest,
	)
)
