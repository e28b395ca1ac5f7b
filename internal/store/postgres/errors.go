package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wolfeidau/valuesim/internal/store"
)

// mapPostgresError maps PostgreSQL-specific errors to store sentinel errors.
// Returns the error wrapped with context if it doesn't match a known pattern.
func mapPostgresError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", store.ErrAlreadyExists, pgErr.ConstraintName)

	case pgerrcode.ForeignKeyViolation:
		// company_id references a company that doesn't exist
		return fmt.Errorf("%w: %s", store.ErrInvalidReference, pgErr.Detail)

	case pgerrcode.CheckViolation:
		return fmt.Errorf("failed to %s: check constraint violation: %s: %w", op, pgErr.ConstraintName, err)

	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return fmt.Errorf("failed to %s: transaction conflict (retryable): %w", op, err)

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.SQLClientUnableToEstablishSQLConnection:
		return fmt.Errorf("failed to %s: database connection error: %w", op, err)

	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown:
		return fmt.Errorf("failed to %s: database server unavailable: %w", op, err)

	case pgerrcode.QueryCanceled:
		return fmt.Errorf("failed to %s: query canceled: %w", op, err)

	default:
		return fmt.Errorf("failed to %s: postgres error [%s]: %s (detail: %s, hint: %s): %w",
			op, pgErr.Code, pgErr.Message, pgErr.Detail, pgErr.Hint, err)
	}
}

// isUndefinedTable reports whether err is a missing-relation error.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable
}
