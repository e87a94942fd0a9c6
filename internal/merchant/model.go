package merchant

import (
	"strings"
	"time"
)

// StatusActive is the only status that permits redemption.
const StatusActive = "Active"

// Merchant holds a registered merchant and its settlement bank details.
type Merchant struct {
	ID            string
	Name          string
	UEN           string
	BankName      string
	BankCode      string
	BranchCode    string
	AccountNumber string
	AccountHolder string
	RegisteredAt  time.Time
	Status        string
}

// IsActive reports whether the merchant may redeem codes. The status check
// is case-insensitive to tolerate hand-maintained records.
func (m Merchant) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(m.Status), StatusActive)
}
