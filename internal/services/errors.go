package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors. Handlers map these to user-visible responses; anything else
// is an infrastructure failure and becomes a generic server error.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// isSerializationFailure reports whether a transaction lost a concurrency
// race and is worth retrying (postgres serialization_failure / deadlock).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation covers both drivers: pg unique_violation and the sqlite
// constraint message surfaced by gorm.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
