package redemption

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	store := NewMemoryStore(600 * time.Second)
	ctx := context.Background()

	pc := PendingCode{
		Code:        "123456",
		HouseholdID: "H1",
		Selection:   map[string]int{"10": 1},
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Put(ctx, pc); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, pc); err != ErrCodeTaken {
		t.Fatalf("expected ErrCodeTaken on duplicate put, got %v", err)
	}

	got, err := store.Get(ctx, "123456")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HouseholdID != "H1" || got.Selection["10"] != 1 {
		t.Fatalf("unexpected pending code: %+v", got)
	}

	if err := store.Delete(ctx, "123456"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "123456"); err != ErrCodeNotFound {
		t.Fatalf("expected ErrCodeNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreTakeIsConsuming(t *testing.T) {
	store := NewMemoryStore(600 * time.Second)
	ctx := context.Background()

	pc := PendingCode{Code: "333333", HouseholdID: "H1", CreatedAt: time.Now().UTC()}
	if err := store.Put(ctx, pc); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Take(ctx, "333333")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got.HouseholdID != "H1" {
		t.Fatalf("unexpected pending code: %+v", got)
	}

	// A second take loses: the first removed the code.
	if _, err := store.Take(ctx, "333333"); err != ErrCodeNotFound {
		t.Fatalf("expected ErrCodeNotFound on second take, got %v", err)
	}

	// A taken code can be put back.
	if err := store.Put(ctx, got); err != nil {
		t.Fatalf("put back: %v", err)
	}
	if _, err := store.Get(ctx, "333333"); err != nil {
		t.Fatalf("restored code should be readable: %v", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(600 * time.Second).(*memoryStore)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base.Add(601 * time.Second) }

	stale := PendingCode{Code: "111111", HouseholdID: "H1", CreatedAt: base}
	fresh := PendingCode{Code: "222222", HouseholdID: "H1", CreatedAt: base.Add(300 * time.Second)}
	if err := store.Put(ctx, stale); err != nil {
		t.Fatalf("put stale: %v", err)
	}
	if err := store.Put(ctx, fresh); err != nil {
		t.Fatalf("put fresh: %v", err)
	}

	if err := store.Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if _, err := store.Get(ctx, "111111"); err != ErrCodeNotFound {
		t.Fatalf("expected stale code swept, got %v", err)
	}
	if _, err := store.Get(ctx, "222222"); err != nil {
		t.Fatalf("fresh code should survive sweep: %v", err)
	}
}
