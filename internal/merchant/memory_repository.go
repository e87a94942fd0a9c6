package merchant

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]Merchant
	byUEN map[string]Merchant
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:  make(map[string]Merchant),
		byUEN: make(map[string]Merchant),
	}
}

func (r *memoryRepository) Create(_ context.Context, m Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("merchant exists")
	}
	r.byID[m.ID] = m
	if m.UEN != "" {
		r.byUEN[m.UEN] = m
	}
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return Merchant{}, ErrNotFound
	}
	return m, nil
}

func (r *memoryRepository) GetByUEN(_ context.Context, uen string) (Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byUEN[uen]
	if !ok {
		return Merchant{}, ErrNotFound
	}
	return m, nil
}
