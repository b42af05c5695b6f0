package departmenterrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentExists = apperror.New(
		apperror.CodeConflict,
		"department with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidHeadID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid head_id",
		http.StatusBadRequest,
	)
)
