package household

import "time"

// Household holds a registered household and its voucher wallet. Balance is
// tracked in whole currency units; Vouchers maps a denomination (as a string
// key, e.g. "10") to the count of unspent voucher units.
type Household struct {
	ID         string
	PostalCode string
	UnitNumber string
	Balance    int64
	Vouchers   map[string]int
	ClaimLink  string
	CreatedAt  time.Time
}

// CloneVouchers returns a defensive copy of the voucher counts.
func (h Household) CloneVouchers() map[string]int {
	out := make(map[string]int, len(h.Vouchers))
	for denom, count := range h.Vouchers {
		out[denom] = count
	}
	return out
}
