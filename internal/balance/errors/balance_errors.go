package balanceerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave balance not found",
		http.StatusNotFound,
	)

	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid person ID",
		http.StatusBadRequest,
	)

	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year must be between 2000 and 2100",
		http.StatusBadRequest,
	)

	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"Person not found",
		http.StatusNotFound,
	)

	ErrNegativeComponent = apperror.New(
		apperror.CodeInvalidInput,
		"Balance components cannot be negative",
		http.StatusBadRequest,
	)
)
