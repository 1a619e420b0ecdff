package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an insert or update would give two
	// users the same email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrConflict covers any other constraint violation.
	ErrConflict = errors.New("constraint violation")
)

const usersEmailConstraint = "users_email_key"

// postgresError returns the SQLSTATE of err, or "" when err did not come
// from the server.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// wrap maps driver errors onto the package sentinels and prefixes op.
func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		if constraintName(err) == usersEmailConstraint {
			return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	case pgerrcode.CheckViolation, pgerrcode.ForeignKeyViolation, pgerrcode.NotNullViolation:
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// NormalizeEmail is applied on every read and write so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
