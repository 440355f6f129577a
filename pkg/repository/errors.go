package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// MapError translates database errors into domain errors. sql.ErrNoRows
// becomes notFound and a unique violation becomes duplicate, wrapped with the
// violated constraint name. Anything else is returned unchanged.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == "" {
			return duplicate
		}
		return fmt.Errorf("%w: %s", duplicate, pgErr.ConstraintName)
	}

	return err
}
