package leaveerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request ID",
		http.StatusBadRequest,
	)

	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid person ID",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor ID",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal to end_date",
		http.StatusBadRequest,
	)

	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"Person not found",
		http.StatusNotFound,
	)

	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"An overlapping leave request already exists for this person",
		http.StatusConflict,
	)

	ErrInsufficientDays = apperror.New(
		apperror.CodeConflict,
		"Not enough remaining leave days for this request",
		http.StatusConflict,
	)

	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"Leave request has already been decided",
		http.StatusConflict,
	)
)
