package counter

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAllocator stores counters in a Postgres table so allocations
// survive restarts. The increment is a single UPDATE ... RETURNING, so
// concurrent allocations serialize on the row lock and never repeat.
type PostgresAllocator struct {
	db *pgxpool.Pool
}

// NewPostgresAllocator seeds the counter rows if absent and returns the allocator.
func NewPostgresAllocator(ctx context.Context, db *pgxpool.Pool) (*PostgresAllocator, error) {
	_, err := db.Exec(ctx, `INSERT INTO counters (name, value) VALUES ($1, $2), ($3, $4)
        ON CONFLICT (name) DO NOTHING`,
		transactionCounter, transactionSeed, voucherCounter, voucherSeed)
	if err != nil {
		return nil, err
	}
	return &PostgresAllocator{db: db}, nil
}

// NextTransactionID allocates the next transaction identifier.
func (a *PostgresAllocator) NextTransactionID(ctx context.Context) (string, error) {
	n, err := a.next(ctx, transactionCounter)
	if err != nil {
		return "", err
	}
	return formatTransactionID(n), nil
}

// NextVoucherCode allocates the next per-unit voucher serial.
func (a *PostgresAllocator) NextVoucherCode(ctx context.Context) (string, error) {
	n, err := a.next(ctx, voucherCounter)
	if err != nil {
		return "", err
	}
	return formatVoucherCode(n), nil
}

func (a *PostgresAllocator) next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := a.db.QueryRow(ctx,
		`UPDATE counters SET value = value + 1 WHERE name = $1 RETURNING value`, name).Scan(&value)
	if err != nil {
		return 0, err
	}
	return value, nil
}
