package holidayerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday not found",
		http.StatusNotFound,
	)

	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid holiday ID",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to to",
		http.StatusBadRequest,
	)

	ErrHolidayDateTaken = apperror.New(
		apperror.CodeConflict,
		"A holiday already exists on this date",
		http.StatusConflict,
	)
)
