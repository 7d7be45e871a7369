package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row does not exist. It aliases pgx.ErrNoRows
	// so that every store implementation reports absence the same way.
	ErrNotFound = pgx.ErrNoRows
	// ErrVersionConflict signals that the row changed since it was read.
	ErrVersionConflict = errors.New("row version changed")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReferenced signals a foreign key still pointing at the row.
	ErrReferenced = errors.New("row still referenced")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrReferenced, pgErr.ConstraintName)
	}
	return err
}
