package balanceerrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"requested days exceed the remaining balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidTransactionType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid transaction type",
		http.StatusBadRequest,
	)
)
