package settlement

import (
	"context"
	"time"
)

// StatusCompleted marks a settled voucher unit.
const StatusCompleted = "Completed"

// FinalUnitRemark marks the last row of a redemption; reconciliation uses it
// to find transaction boundaries in the unit-level log.
const FinalUnitRemark = "Final denomination used"

// Record is one audit row per redeemed voucher unit. The log must
// reconstruct exactly which physical units were consumed, not just
// aggregate amounts, so a redemption of N units appends N records.
type Record struct {
	TransactionID string
	HouseholdID   string
	MerchantID    string
	Timestamp     time.Time
	VoucherCode   string
	Denomination  int64
	TotalAmount   int64
	Status        string
	Remark        string
}

// Sink is an append-only destination for settlement records.
type Sink interface {
	Append(ctx context.Context, r Record) error
}
