package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"credit-app/pkg/apperror"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps constraint violations to domain errors and leaves everything else alone.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return apperror.ErrDuplicate("email")
		case strings.Contains(pgErr.ConstraintName, "username"):
			return apperror.ErrDuplicate("username")
		}
		return apperror.ErrDuplicate(pgErr.ConstraintName)
	case foreignKeyViolation:
		if strings.Contains(pgErr.ConstraintName, "user_id") {
			return apperror.ValidationField("user_id", "user does not exist")
		}
	}
	return err
}
