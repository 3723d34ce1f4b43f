package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey is returned when an insert or update violates a unique
// constraint, most importantly the (title, authors) natural key on books.
var ErrDuplicateKey = errors.New("duplicate key")

const uniqueViolationCode = "23505"

// translateError maps driver-level unique violations to ErrDuplicateKey so
// services can match with errors.Is instead of inspecting SQLSTATEs.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateKey
	}
	return err
}
