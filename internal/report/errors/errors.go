package reporterrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrLetterNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"a leave letter is only issued for approved requests",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"dates must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate the report file",
		http.StatusInternalServerError,
	)
)
