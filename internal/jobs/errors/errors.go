package jobserrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrInvalidAsOf = apperror.New(
		apperror.CodeInvalidInput,
		"as_of must be a YYYY-MM-DD date",
		http.StatusBadRequest,
	)
	ErrUnknownJob = apperror.New(
		apperror.CodeNotFound,
		"unknown job",
		http.StatusNotFound,
	)
)
