package merchant

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// BankDirectory validates settlement bank details against the scheme's
// reference data.
type BankDirectory interface {
	IsValid(bankCode, branchCode string) bool
}

type bankPair struct {
	bank   string
	branch string
}

// CSVBankDirectory holds the (bank code, branch code) pairs loaded from the
// scheme's BankCode.csv reference file.
type CSVBankDirectory struct {
	pairs map[bankPair]struct{}
}

// LoadBankDirectory reads a bank-code CSV with Bank_Code and Branch_Code
// columns into memory for O(1) validation.
func LoadBankDirectory(path string) (*CSVBankDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank code file: %w", err)
	}
	defer f.Close()
	return parseBankDirectory(f)
}

func parseBankDirectory(r io.Reader) (*CSVBankDirectory, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read bank code header: %w", err)
	}

	bankIdx, branchIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Bank_Code":
			bankIdx = i
		case "Branch_Code":
			branchIdx = i
		}
	}
	if bankIdx < 0 || branchIdx < 0 {
		return nil, fmt.Errorf("bank code file missing Bank_Code/Branch_Code columns")
	}

	dir := &CSVBankDirectory{pairs: make(map[bankPair]struct{})}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bank code row: %w", err)
		}
		if bankIdx >= len(record) || branchIdx >= len(record) {
			continue
		}
		bank := strings.TrimSpace(record[bankIdx])
		branch := strings.TrimSpace(record[branchIdx])
		if bank != "" && branch != "" {
			dir.pairs[bankPair{bank, branch}] = struct{}{}
		}
	}
	return dir, nil
}

// IsValid reports whether the (bank code, branch code) pair exists in the
// reference data.
func (d *CSVBankDirectory) IsValid(bankCode, branchCode string) bool {
	_, ok := d.pairs[bankPair{strings.TrimSpace(bankCode), strings.TrimSpace(branchCode)}]
	return ok
}

// StaticBankDirectory validates against a fixed set of pairs. Used in tests
// and dev mode where no reference file is configured.
type StaticBankDirectory map[string][]string

// IsValid reports whether the branch code is listed under the bank code.
func (d StaticBankDirectory) IsValid(bankCode, branchCode string) bool {
	for _, branch := range d[strings.TrimSpace(bankCode)] {
		if branch == strings.TrimSpace(branchCode) {
			return true
		}
	}
	return false
}
