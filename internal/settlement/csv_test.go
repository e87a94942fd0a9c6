package settlement

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCSVSinkWritesHourlyFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	rec := Record{
		TransactionID: "TX1001",
		HouseholdID:   "H123456",
		MerchantID:    "M0001",
		Timestamp:     fixed,
		VoucherCode:   "V0000001",
		Denomination:  10,
		TotalAmount:   20,
		Status:        StatusCompleted,
		Remark:        "1",
	}
	if err := sink.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	rec.VoucherCode = "V0000002"
	rec.Remark = FinalUnitRemark
	if err := sink.Append(context.Background(), rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	path := filepath.Join(dir, "Redeem2026031415.csv")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open hourly file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Transaction_ID" {
		t.Fatalf("missing header row: %v", rows[0])
	}
	if rows[1][3] != "20260314150926" {
		t.Fatalf("unexpected timestamp format: %s", rows[1][3])
	}
	if rows[1][5] != "$10.00" || rows[1][6] != "$20.00" {
		t.Fatalf("unexpected amount formatting: %v", rows[1])
	}
	if rows[2][8] != FinalUnitRemark {
		t.Fatalf("expected final unit remark, got %s", rows[2][8])
	}
}
