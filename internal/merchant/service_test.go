package merchant

import (
	"context"
	"strings"
	"testing"
)

func testBanks() BankDirectory {
	return StaticBankDirectory{"7171": {"001", "081"}}
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:          "Sunrise Minimart",
		UEN:           "201812345K",
		BankName:      "DBS",
		BankCode:      "7171",
		BranchCode:    "081",
		AccountNumber: "0123456789",
		AccountHolder: "Sunrise Minimart Pte Ltd",
	}
}

func TestRegisterMerchant(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testBanks())
	ctx := context.Background()

	m, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if !strings.HasPrefix(m.ID, "M") || len(m.ID) != 5 {
		t.Fatalf("unexpected merchant id format: %s", m.ID)
	}
	if m.Status != StatusActive {
		t.Fatalf("expected default status Active, got %s", m.Status)
	}
	if !m.IsActive() {
		t.Fatalf("newly registered merchant should be active")
	}

	fetched, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.UEN != m.UEN {
		t.Fatalf("stored merchant mismatch: %+v", fetched)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testBanks())

	input := validInput()
	input.AccountNumber = "  "
	if _, err := svc.Register(context.Background(), input); err == nil {
		t.Fatalf("expected error for missing account number")
	}
}

func TestRegisterRejectsDuplicateUEN(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testBanks())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, validInput()); err != ErrUENExists {
		t.Fatalf("expected ErrUENExists, got %v", err)
	}
}

func TestRegisterRejectsUnknownBank(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testBanks())

	input := validInput()
	input.BranchCode = "999"
	if _, err := svc.Register(context.Background(), input); err != ErrInvalidBankCode {
		t.Fatalf("expected ErrInvalidBankCode, got %v", err)
	}
}

func TestStatusCheckIsCaseInsensitive(t *testing.T) {
	m := Merchant{Status: "  active "}
	if !m.IsActive() {
		t.Fatalf("expected lowercase status to count as active")
	}
	m.Status = "Suspended"
	if m.IsActive() {
		t.Fatalf("suspended merchant must not be active")
	}
}

func TestParseBankDirectory(t *testing.T) {
	csv := "Bank_Name,Bank_Code,Branch_Code\nDBS,7171,081\nOCBC,7339,501\n"
	dir, err := parseBankDirectory(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !dir.IsValid("7171", "081") || !dir.IsValid(" 7339 ", "501") {
		t.Fatalf("expected listed pairs to validate")
	}
	if dir.IsValid("7171", "501") {
		t.Fatalf("bank/branch pairs must not cross-match")
	}

	if _, err := parseBankDirectory(strings.NewReader("a,b\n1,2\n")); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}
