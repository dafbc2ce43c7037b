package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"spicetracker/apperr"
)

// queryable abstracts over a pool and a transaction so repositories can run
// inside or outside a unit of work
type queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// storageErr wraps a database error with the failed operation, classifying
// dropped connections and deadline expiry as transient
func storageErr(op string, err error) error {
	transient := pgconn.SafeToRetry(err) ||
		errors.Is(err, context.DeadlineExceeded)
	return apperr.Storage(op, err, transient)
}
