package notificationerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)

	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification ID",
		http.StatusBadRequest,
	)

	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid person ID",
		http.StatusBadRequest,
	)

	ErrEmptyMessage = apperror.New(
		apperror.CodeInvalidInput,
		"Notification message cannot be empty",
		http.StatusBadRequest,
	)
)
