package merchant

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the merchant does not exist.
	ErrNotFound = errors.New("merchant not found")

	// ErrUENExists indicates the UEN is already registered.
	ErrUENExists = errors.New("uen already registered")
)

// Repository persists merchants.
type Repository interface {
	Create(ctx context.Context, m Merchant) error
	Get(ctx context.Context, id string) (Merchant, error)
	GetByUEN(ctx context.Context, uen string) (Merchant, error)
}

// PostgresRepository stores merchants in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed merchant repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a merchant record.
func (r *PostgresRepository) Create(ctx context.Context, m Merchant) error {
	_, err := r.db.Exec(ctx, `INSERT INTO merchants
        (id, name, uen, bank_name, bank_code, branch_code, account_number, account_holder, registered_at, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Name, m.UEN, m.BankName, m.BankCode, m.BranchCode,
		m.AccountNumber, m.AccountHolder, m.RegisteredAt.UTC(), m.Status)
	return err
}

// Get fetches a merchant by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Merchant, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, name, uen, bank_name, bank_code, branch_code,
        account_number, account_holder, registered_at, status FROM merchants WHERE id = $1`, id))
}

// GetByUEN fetches a merchant by its UEN.
func (r *PostgresRepository) GetByUEN(ctx context.Context, uen string) (Merchant, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, name, uen, bank_name, bank_code, branch_code,
        account_number, account_holder, registered_at, status FROM merchants WHERE uen = $1`, uen))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (Merchant, error) {
	var (
		m            Merchant
		registeredAt time.Time
	)
	err := row.Scan(&m.ID, &m.Name, &m.UEN, &m.BankName, &m.BankCode, &m.BranchCode,
		&m.AccountNumber, &m.AccountHolder, &registeredAt, &m.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Merchant{}, ErrNotFound
		}
		return Merchant{}, err
	}
	m.RegisteredAt = registeredAt.UTC()
	return m, nil
}
