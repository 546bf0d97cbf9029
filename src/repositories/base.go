package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by every store implementation when a referenced
// entity does not exist, regardless of backend.
var ErrNotFound = errors.New("entity not found")

// ErrDuplicate is returned when an insert collides with a unique constraint,
// such as a strategy or product name that is already taken.
var ErrDuplicate = errors.New("entity already exists")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
