package household

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const claimLinkBase = "https://cdc.gov.sg/claim/"

// Registration grants the full scheme entitlement up front: the May 2025
// ($500) and Jan 2026 ($300) tranches, issued as a fixed denomination mix.
var entitlementVouchers = map[string]int{
	"2":  80,
	"5":  32,
	"10": 45,
}

// EntitlementBalance is the total entitlement granted at registration.
const EntitlementBalance = 800

// Service manages household registration and wallet reads.
type Service struct {
	repo Repository
}

// NewService builds a household service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to register a household.
type RegisterInput struct {
	PostalCode string
	UnitNumber string
}

// Register provisions a household wallet with the fixed voucher entitlement.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Household, error) {
	postal := strings.TrimSpace(input.PostalCode)
	unit := strings.TrimSpace(input.UnitNumber)
	if postal == "" {
		return Household{}, errors.New("postal code is required")
	}
	if unit == "" {
		return Household{}, errors.New("unit number is required")
	}

	id, err := s.generateID(ctx)
	if err != nil {
		return Household{}, err
	}

	vouchers := make(map[string]int, len(entitlementVouchers))
	for denom, count := range entitlementVouchers {
		vouchers[denom] = count
	}

	h := Household{
		ID:         id,
		PostalCode: postal,
		UnitNumber: unit,
		Balance:    EntitlementBalance,
		Vouchers:   vouchers,
		ClaimLink:  claimLinkBase + id,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Household{}, err
	}

	return h, nil
}

// Get retrieves a household wallet.
func (s *Service) Get(ctx context.Context, id string) (Household, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// generateID produces a unique household id of the form H123456.
func (s *Service) generateID(ctx context.Context) (string, error) {
	for {
		candidate := fmt.Sprintf("H%06d", 100000+rand.Intn(900000))
		_, err := s.repo.Get(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}
