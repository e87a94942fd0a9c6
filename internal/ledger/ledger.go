package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/relief-vouchers/relief_vouchers/internal/household"
)

var (
	// ErrInsufficientVouchers occurs when a wallet cannot cover the
	// requested voucher selection.
	ErrInsufficientVouchers = errors.New("insufficient vouchers")

	// ErrInsufficientFunds indicates the wallet balance would go negative.
	// Deduction re-checks voucher counts first, so hitting this means the
	// stored balance disagrees with the voucher inventory.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Ledger owns the sufficiency check and the atomic deduction of vouchers and
// balance from a household wallet. Wallet state lives in the household
// repository; every committed mutation is written through before returning.
type Ledger struct {
	mu   sync.Mutex
	repo household.Repository
}

// New constructs an entitlement ledger over the household directory.
func New(repo household.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Wallet loads the current wallet state for a household.
func (l *Ledger) Wallet(ctx context.Context, householdID string) (household.Household, error) {
	return l.repo.Get(ctx, householdID)
}

// Sufficient reports whether the wallet covers every denomination in the
// selection. Denominations absent from the wallet count as zero;
// denominations absent from the selection are ignored.
func Sufficient(wallet household.Household, selection map[string]int) bool {
	for denom, qty := range selection {
		if wallet.Vouchers[denom] < qty {
			return false
		}
	}
	return true
}

// Total computes the face value of a selection.
func Total(selection map[string]int) (int64, error) {
	var total int64
	for denom, qty := range selection {
		value, err := strconv.ParseInt(denom, 10, 64)
		if err != nil || value <= 0 {
			return 0, fmt.Errorf("invalid denomination %q", denom)
		}
		if qty < 0 {
			return 0, fmt.Errorf("negative quantity for denomination %q", denom)
		}
		total += value * int64(qty)
	}
	return total, nil
}

// Deduct subtracts the selection's voucher counts and total amount from the
// household wallet, persisting the new state before returning it.
// Sufficiency is re-validated here under the ledger lock; an earlier
// advisory check at code issuance is not trusted.
func (l *Ledger) Deduct(ctx context.Context, householdID string, selection map[string]int, total int64) (household.Household, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	wallet, err := l.repo.Get(ctx, householdID)
	if err != nil {
		return household.Household{}, err
	}

	if !Sufficient(wallet, selection) {
		return household.Household{}, ErrInsufficientVouchers
	}

	for denom, qty := range selection {
		wallet.Vouchers[denom] -= qty
	}
	wallet.Balance -= total
	if wallet.Balance < 0 {
		return household.Household{}, ErrInsufficientFunds
	}

	if err := l.repo.Update(ctx, wallet); err != nil {
		return household.Household{}, err
	}

	return wallet, nil
}
