package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/relief-vouchers/relief_vouchers/internal/household"
)

func seedWallet(t *testing.T, repo household.Repository, id string, balance int64, vouchers map[string]int) {
	t.Helper()
	err := repo.Create(context.Background(), household.Household{
		ID:       id,
		Balance:  balance,
		Vouchers: vouchers,
	})
	if err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
}

func TestDeductConservesBalanceAndCounts(t *testing.T) {
	repo := household.NewMemoryRepository()
	l := New(repo)
	ctx := context.Background()

	seedWallet(t, repo, "H100001", 800, map[string]int{"10": 45, "5": 32, "2": 80})

	updated, err := l.Deduct(ctx, "H100001", map[string]int{"10": 1, "5": 2}, 20)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}

	if updated.Balance != 780 {
		t.Fatalf("expected balance 780, got %d", updated.Balance)
	}
	if updated.Vouchers["10"] != 44 || updated.Vouchers["5"] != 30 || updated.Vouchers["2"] != 80 {
		t.Fatalf("unexpected voucher counts: %v", updated.Vouchers)
	}

	// The write-through must be durable in the repository, not only in the
	// returned snapshot.
	stored, err := repo.Get(ctx, "H100001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Balance != 780 || stored.Vouchers["10"] != 44 {
		t.Fatalf("persisted wallet mismatch: %+v", stored)
	}
}

func TestDeductInsufficientVouchers(t *testing.T) {
	repo := household.NewMemoryRepository()
	l := New(repo)
	ctx := context.Background()

	seedWallet(t, repo, "H100002", 20, map[string]int{"10": 2})

	if _, err := l.Deduct(ctx, "H100002", map[string]int{"10": 3}, 30); err != ErrInsufficientVouchers {
		t.Fatalf("expected ErrInsufficientVouchers, got %v", err)
	}

	// Missing denomination counts as zero.
	if _, err := l.Deduct(ctx, "H100002", map[string]int{"5": 1}, 5); err != ErrInsufficientVouchers {
		t.Fatalf("expected ErrInsufficientVouchers for missing denomination, got %v", err)
	}

	stored, _ := repo.Get(ctx, "H100002")
	if stored.Balance != 20 || stored.Vouchers["10"] != 2 {
		t.Fatalf("failed deduction must not mutate the wallet: %+v", stored)
	}
}

func TestDeductNegativeBalanceIsCorruption(t *testing.T) {
	repo := household.NewMemoryRepository()
	l := New(repo)
	ctx := context.Background()

	// Voucher inventory says the deduction fits but the balance does not;
	// the ledger treats this as a consistency failure.
	seedWallet(t, repo, "H100003", 5, map[string]int{"10": 1})

	if _, err := l.Deduct(ctx, "H100003", map[string]int{"10": 1}, 10); err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestDeductUnknownHousehold(t *testing.T) {
	l := New(household.NewMemoryRepository())

	if _, err := l.Deduct(context.Background(), "H999999", map[string]int{"10": 1}, 10); err != household.ErrNotFound {
		t.Fatalf("expected household.ErrNotFound, got %v", err)
	}
}

func TestDeductSerializesConcurrentSpend(t *testing.T) {
	repo := household.NewMemoryRepository()
	l := New(repo)
	ctx := context.Background()

	seedWallet(t, repo, "H100004", 100, map[string]int{"10": 10})

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Deduct(ctx, "H100004", map[string]int{"10": 1}, 10); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successful deductions, got %d", succeeded)
	}
	stored, _ := repo.Get(ctx, "H100004")
	if stored.Balance != 0 || stored.Vouchers["10"] != 0 {
		t.Fatalf("wallet not fully drained: %+v", stored)
	}
}

func TestTotal(t *testing.T) {
	total, err := Total(map[string]int{"10": 1, "5": 2})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 20 {
		t.Fatalf("expected total 20, got %d", total)
	}

	if _, err := Total(map[string]int{"ten": 1}); err == nil {
		t.Fatalf("expected error for non-numeric denomination")
	}
	if _, err := Total(map[string]int{"-5": 1}); err == nil {
		t.Fatalf("expected error for non-positive denomination")
	}
	if _, err := Total(map[string]int{"5": -1}); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}
