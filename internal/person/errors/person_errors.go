package personerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"Person not found",
		http.StatusNotFound,
	)

	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid person ID",
		http.StatusBadRequest,
	)

	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
		http.StatusBadRequest,
	)

	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Person with the same email already exists",
		http.StatusConflict,
	)
)
