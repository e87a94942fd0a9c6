package redemption

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCodeTaken indicates the candidate code collides with a pending one.
	ErrCodeTaken = errors.New("code already pending")

	// ErrCodeNotFound indicates no pending code exists under that value.
	ErrCodeNotFound = errors.New("pending code not found")
)

// PendingCode is an issued, not-yet-redeemed redemption code together with
// the voucher selection it covers. Pending codes are deliberately volatile:
// a restart loses them, and households simply generate a new one.
type PendingCode struct {
	Code        string         `json:"-"`
	HouseholdID string         `json:"household_id"`
	Selection   map[string]int `json:"vouchers"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CodeStore holds pending codes keyed by code value. Put enforces
// uniqueness under the store's own lock so candidate generation can simply
// retry on ErrCodeTaken without a check-then-insert race. Take is the
// redemption-side read: it removes the code in the same atomic step, so two
// concurrent redemptions of one code cannot both observe it pending. A
// caller that takes a code and then aborts before committing puts it back.
type CodeStore interface {
	Put(ctx context.Context, pc PendingCode) error
	Get(ctx context.Context, code string) (PendingCode, error)
	Take(ctx context.Context, code string) (PendingCode, error)
	Delete(ctx context.Context, code string) error
	// Sweep drops expired codes best-effort; stores whose backend already
	// expires keys may treat it as a no-op.
	Sweep(ctx context.Context) error
}
