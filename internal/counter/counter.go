package counter

import (
	"context"
	"fmt"
)

const (
	transactionCounter = "transaction"
	voucherCounter     = "voucher"

	// Counter seeds: the first allocated ids are TX1001 and V0000001.
	transactionSeed = 1000
	voucherSeed     = 0
)

// Allocator hands out durable, monotonically increasing identifiers for
// settlement transactions and individual voucher units. Values are never
// reused once issued; gaps after a crash are acceptable.
type Allocator interface {
	NextTransactionID(ctx context.Context) (string, error)
	NextVoucherCode(ctx context.Context) (string, error)
}

func formatTransactionID(n int64) string {
	return fmt.Sprintf("TX%d", n)
}

func formatVoucherCode(n int64) string {
	return fmt.Sprintf("V%07d", n)
}
