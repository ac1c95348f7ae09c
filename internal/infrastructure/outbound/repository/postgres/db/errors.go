package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const invalidTextRepresentation = "22P02"

// IsInvalidText reports whether postgres rejected a malformed literal, such as
// a non-uuid id compared against a uuid column.
func IsInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

// IsNotFound treats a malformed id like a missing row: no row can match it.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || IsInvalidText(err)
}
