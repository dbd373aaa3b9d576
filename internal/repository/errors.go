package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrForeignKey marks writes rejected because a referenced row is missing
	// or because the row is still referenced elsewhere.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrDuplicate marks writes rejected by a unique constraint.
	ErrDuplicate = errors.New("unique violation")
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// wrap prefixes err with op and tags constraint violations with a sentinel.
func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrForeignKey, err)
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// execAffecting runs a statement that must touch a row and reports sql.ErrNoRows otherwise.
func execAffecting(ctx context.Context, db execer, op, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
