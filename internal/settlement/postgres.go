package settlement

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink appends settlement records to the redemption_log table.
type PostgresSink struct {
	db *pgxpool.Pool
}

// NewPostgresSink builds a Postgres-backed settlement sink.
func NewPostgresSink(db *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{db: db}
}

// Append inserts one settlement row.
func (s *PostgresSink) Append(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `INSERT INTO redemption_log
        (transaction_id, household_id, merchant_id, redeemed_at, voucher_code, denomination, total_amount, status, remark)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.TransactionID, r.HouseholdID, r.MerchantID, r.Timestamp.UTC(),
		r.VoucherCode, r.Denomination, r.TotalAmount, r.Status, r.Remark)
	return err
}
