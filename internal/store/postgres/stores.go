package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/valuesim/internal/store"
)

// NewStores returns every simulator store sharing one connection pool.
func NewStores(pool *pgxpool.Pool) store.Stores {
	return store.Stores{
		Companies: NewCompanyStore(pool),
		Founders:  NewFounderStore(pool),
		Rounds:    NewFundingRoundStore(pool),
		Grants:    NewEsopGrantStore(pool),
		Settings:  NewSettingsStore(pool),
		Scenarios: NewScenarioStore(pool),
		Comments:  NewCommentStore(pool),
	}
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, op string, scan func(pgx.Row) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPostgresError(op, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row (%s): %w", op, err)
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows (%s): %w", op, err)
	}

	return out, nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, pool *pgxpool.Pool, op string, query string, args ...any) error {
	result, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return mapPostgresError(op, err)
	}
	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
