package household

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Household
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Household)}
}

func (r *memoryRepository) Create(_ context.Context, h Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[h.ID]; exists {
		return errors.New("household exists")
	}
	h.Vouchers = h.CloneVouchers()
	r.storage[h.ID] = h
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Household, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.storage[id]
	if !ok {
		return Household{}, ErrNotFound
	}
	// Copy the voucher map so callers cannot mutate stored state in place.
	h.Vouchers = h.CloneVouchers()
	return h, nil
}

func (r *memoryRepository) Update(_ context.Context, h Household) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[h.ID]; !ok {
		return ErrNotFound
	}
	h.Vouchers = h.CloneVouchers()
	r.storage[h.ID] = h
	return nil
}
