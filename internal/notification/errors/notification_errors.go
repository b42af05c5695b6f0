package notificationerrors

import (
	"net/http"

	"cdbl-lms/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNoRecipients = apperror.New(
		apperror.CodeInvalidInput,
		"event has no resolvable recipient",
		http.StatusBadRequest,
	)
)
