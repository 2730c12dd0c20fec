package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

// SQLSTATE codes we translate. https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
	codeStringDataTruncated = "22001"
)

// translate maps driver errors onto the apperror taxonomy. It is the only place
// that looks at pgx error shapes; callers above the repository never do.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.Wrap(apperror.NotFound, resource+" not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperror.Wrap(apperror.Conflict,
				fmt.Sprintf("Duplicate field value entered: %s", fieldFromConstraint(pgErr.TableName, pgErr.ConstraintName)), err)
		case codeInvalidTextRepr:
			return apperror.Wrap(apperror.Validation, "Resource not found. Invalid: _id", err)
		case codeNotNullViolation:
			return apperror.Wrap(apperror.Validation, fmt.Sprintf("%s is required", pgErr.ColumnName), err)
		case codeCheckViolation, codeStringDataTruncated:
			return apperror.Wrap(apperror.Validation, fmt.Sprintf("Invalid value for %s", resource), err)
		}
	}
	return apperror.InternalErr(err)
}

// fieldFromConstraint turns "users_email_key" into "email".
func fieldFromConstraint(table, constraint string) string {
	f := strings.TrimPrefix(constraint, table+"_")
	f = strings.TrimSuffix(f, "_key")
	if f == "" {
		return constraint
	}
	return f
}

func isNotFound(err error) bool {
	return apperror.Is(err, apperror.NotFound)
}
