package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Repository sentinel errors. Lookups that match no row return pgx.ErrNoRows.
var (
	ErrDuplicate      = errors.New("duplicate record")
	ErrAlreadyReacted = errors.New("reaction already recorded")
)

const uniqueViolation = "23505"

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// mapWriteErr converts a unique violation into ErrDuplicate, keeping the
// constraint name for logs.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
