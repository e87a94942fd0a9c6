package settlement

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var csvHeader = []string{
	"Transaction_ID",
	"Household_ID",
	"Merchant_ID",
	"Transaction_Date_Time",
	"Voucher_Code",
	"Denomination_Used",
	"Amount_Redeemed",
	"Payment_Status",
	"Remarks",
}

// CSVSink appends settlement rows to hourly files named RedeemYYYYMMDDHH.csv,
// the exchange format the scheme's reconciliation batch consumes.
type CSVSink struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewCSVSink builds a settlement sink writing under dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir, now: time.Now}
}

// Append writes one settlement row, creating the hourly file with its header
// on first use.
func (s *CSVSink) Append(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create settlement dir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("Redeem%s.csv", s.now().Format("2006010215")))

	info, err := os.Stat(path)
	needHeader := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open settlement file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	row := []string{
		r.TransactionID,
		r.HouseholdID,
		r.MerchantID,
		r.Timestamp.UTC().Format("20060102150405"),
		r.VoucherCode,
		fmt.Sprintf("$%d.00", r.Denomination),
		fmt.Sprintf("$%d.00", r.TotalAmount),
		r.Status,
		r.Remark,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
