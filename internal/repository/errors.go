package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStorage matches every error returned by a repository because the
// database failed. A missing row is never an error.
var ErrStorage = errors.New("storage error")

// StorageError carries the failed operation and, on PostgreSQL, the SQLSTATE.
type StorageError struct {
	Op       string
	SQLState string
	Err      error
}

func (e *StorageError) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("%s: %s (SQLSTATE %s): %v", ErrStorage, e.Op, e.SQLState, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	se := &StorageError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.SQLState = pgErr.Code
	}
	return se
}
