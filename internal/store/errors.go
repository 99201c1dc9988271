package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the store classifies. Any other code becomes a DatabaseError.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// NotFoundError is returned when a lookup matches no row.
type NotFoundError struct {
	Entity string
	Field  string
	Value  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%s=%v)", e.Entity, e.Field, e.Value)
}

// UniqueError reports a unique constraint violation. For membership inserts it
// means "already a member".
type UniqueError struct {
	Constraint string
	Err        error
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("unique constraint %q violated: %v", e.Constraint, e.Err)
}

func (e *UniqueError) Unwrap() error { return e.Err }

type ForeignKeyError struct {
	Constraint string
	Err        error
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key constraint %q violated: %v", e.Constraint, e.Err)
}

func (e *ForeignKeyError) Unwrap() error { return e.Err }

type NotNullError struct {
	Column string
	Err    error
}

func (e *NotNullError) Error() string {
	return fmt.Sprintf("column %q must not be null: %v", e.Column, e.Err)
}

func (e *NotNullError) Unwrap() error { return e.Err }

// DatabaseError carries a PostgreSQL error whose code is not classified.
type DatabaseError struct {
	Code string
	Err  error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error %s: %v", e.Code, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

type NoRowsUpdatedError struct {
	Entity string
	ID     int64
}

func (e *NoRowsUpdatedError) Error() string {
	return fmt.Sprintf("update of %s %d affected no rows", e.Entity, e.ID)
}

type NoRowsDeletedError struct {
	Entity string
	Key    string
}

func (e *NoRowsDeletedError) Error() string {
	return fmt.Sprintf("delete of %s %s affected no rows", e.Entity, e.Key)
}

// Translate classifies err by its SQLSTATE. Errors that carry no code are
// returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code == "" {
		return err
	}

	switch pgErr.Code {
	case codeNotNullViolation:
		return &NotNullError{Column: pgErr.ColumnName, Err: err}
	case codeForeignKeyViolation:
		return &ForeignKeyError{Constraint: pgErr.ConstraintName, Err: err}
	case codeUniqueViolation:
		return &UniqueError{Constraint: pgErr.ConstraintName, Err: err}
	default:
		return &DatabaseError{Code: pgErr.Code, Err: err}
	}
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUnique reports whether err is, or wraps, a *UniqueError.
func IsUnique(err error) bool {
	var ue *UniqueError
	return errors.As(err, &ue)
}
