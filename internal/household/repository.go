package household

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the household does not exist.
var ErrNotFound = errors.New("household not found")

// Repository persists household wallets. Update is the write-through used by
// the entitlement ledger after a deduction; implementations must make the
// new state durable before returning.
type Repository interface {
	Create(ctx context.Context, h Household) error
	Get(ctx context.Context, id string) (Household, error)
	Update(ctx context.Context, h Household) error
}

// PostgresRepository stores households in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a household record.
func (r *PostgresRepository) Create(ctx context.Context, h Household) error {
	vouchers, err := json.Marshal(h.Vouchers)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO households (id, postal_code, unit_number, balance, vouchers, claim_link, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.PostalCode, h.UnitNumber, h.Balance, vouchers, h.ClaimLink, h.CreatedAt.UTC())
	return err
}

// Get fetches a household wallet by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Household, error) {
	row := r.db.QueryRow(ctx, `SELECT id, postal_code, unit_number, balance, vouchers, claim_link, created_at
        FROM households WHERE id = $1`, id)

	var (
		h         Household
		vouchers  []byte
		createdAt time.Time
	)
	if err := row.Scan(&h.ID, &h.PostalCode, &h.UnitNumber, &h.Balance, &vouchers, &h.ClaimLink, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Household{}, ErrNotFound
		}
		return Household{}, err
	}
	if err := json.Unmarshal(vouchers, &h.Vouchers); err != nil {
		return Household{}, err
	}
	h.CreatedAt = createdAt.UTC()
	return h, nil
}

// Update overwrites the wallet state for an existing household.
func (r *PostgresRepository) Update(ctx context.Context, h Household) error {
	vouchers, err := json.Marshal(h.Vouchers)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE households SET balance = $2, vouchers = $3 WHERE id = $1`,
		h.ID, h.Balance, vouchers)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
