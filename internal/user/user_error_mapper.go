package user

import (
	"errors"
	"strings"

	usererrors "go-leavedesk/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "username"):
				return usererrors.ErrUsernameAlreadyExists
			case strings.Contains(pgErr.ConstraintName, "email"):
				return usererrors.ErrEmailAlreadyExists
			}
		}
	}

	return err
}
