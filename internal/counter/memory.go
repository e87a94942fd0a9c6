package counter

import (
	"context"
	"sync"
)

type memoryAllocator struct {
	mu sync.Mutex
	tx int64
	v  int64
}

// NewMemoryAllocator constructs a volatile allocator for tests and dev mode.
func NewMemoryAllocator() Allocator {
	return &memoryAllocator{tx: transactionSeed, v: voucherSeed}
}

func (a *memoryAllocator) NextTransactionID(_ context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tx++
	return formatTransactionID(a.tx), nil
}

func (a *memoryAllocator) NextVoucherCode(_ context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v++
	return formatVoucherCode(a.v), nil
}
