package merchant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrInvalidBankCode indicates the bank/branch pair is not in the reference data.
var ErrInvalidBankCode = errors.New("invalid bank code / branch code")

// Service manages merchant registration and lookup.
type Service struct {
	repo  Repository
	banks BankDirectory
}

// NewService builds a merchant service instance.
func NewService(repo Repository, banks BankDirectory) *Service {
	return &Service{repo: repo, banks: banks}
}

// RegisterInput captures the data required to register a merchant.
type RegisterInput struct {
	Name          string
	UEN           string
	BankName      string
	BankCode      string
	BranchCode    string
	AccountNumber string
	AccountHolder string
	Status        string
}

// Register validates and stores a new merchant.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Merchant, error) {
	fields := map[string]string{
		"merchant_name":       strings.TrimSpace(input.Name),
		"uen":                 strings.TrimSpace(input.UEN),
		"bank_name":           strings.TrimSpace(input.BankName),
		"bank_code":           strings.TrimSpace(input.BankCode),
		"branch_code":         strings.TrimSpace(input.BranchCode),
		"account_number":      strings.TrimSpace(input.AccountNumber),
		"account_holder_name": strings.TrimSpace(input.AccountHolder),
	}
	for _, key := range []string{"merchant_name", "uen", "bank_name", "bank_code", "branch_code", "account_number", "account_holder_name"} {
		if fields[key] == "" {
			return Merchant{}, fmt.Errorf("missing required field: %s", key)
		}
	}

	if _, err := s.repo.GetByUEN(ctx, fields["uen"]); err == nil {
		return Merchant{}, ErrUENExists
	} else if !errors.Is(err, ErrNotFound) {
		return Merchant{}, err
	}

	if !s.banks.IsValid(fields["bank_code"], fields["branch_code"]) {
		return Merchant{}, ErrInvalidBankCode
	}

	id, err := s.generateID(ctx)
	if err != nil {
		return Merchant{}, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = StatusActive
	}

	m := Merchant{
		ID:            id,
		Name:          fields["merchant_name"],
		UEN:           fields["uen"],
		BankName:      fields["bank_name"],
		BankCode:      fields["bank_code"],
		BranchCode:    fields["branch_code"],
		AccountNumber: fields["account_number"],
		AccountHolder: fields["account_holder_name"],
		RegisteredAt:  time.Now().UTC(),
		Status:        status,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Merchant{}, err
	}

	return m, nil
}

// Get retrieves a merchant by id.
func (s *Service) Get(ctx context.Context, id string) (Merchant, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// generateID produces a unique merchant id, M + 4 digits, widening to
// 6 digits if the short space is exhausted.
func (s *Service) generateID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 50; attempt++ {
		candidate := fmt.Sprintf("M%04d", rand.Intn(10000))
		if free, err := s.idFree(ctx, candidate); err != nil {
			return "", err
		} else if free {
			return candidate, nil
		}
	}
	for {
		candidate := fmt.Sprintf("M%06d", rand.Intn(1000000))
		if free, err := s.idFree(ctx, candidate); err != nil {
			return "", err
		} else if free {
			return candidate, nil
		}
	}
}

func (s *Service) idFree(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
