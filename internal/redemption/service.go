package redemption

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/relief-vouchers/relief_vouchers/internal/counter"
	"github.com/relief-vouchers/relief_vouchers/internal/household"
	"github.com/relief-vouchers/relief_vouchers/internal/ledger"
	"github.com/relief-vouchers/relief_vouchers/internal/merchant"
	"github.com/relief-vouchers/relief_vouchers/internal/metrics"
	"github.com/relief-vouchers/relief_vouchers/internal/notification"
	"github.com/relief-vouchers/relief_vouchers/internal/settlement"
)

const (
	defaultCodeTTL    = 600 * time.Second
	defaultCodeLength = 6
)

// MerchantDirectory resolves merchants for redemption validation.
type MerchantDirectory interface {
	Get(ctx context.Context, id string) (merchant.Merchant, error)
}

// Deps aggregates the collaborators of the redemption coordinator.
type Deps struct {
	Ledger      *ledger.Ledger
	Merchants   MerchantDirectory
	Codes       CodeStore
	Counters    counter.Allocator
	Settlements settlement.Sink
	Notifier    notification.Notifier
	Metrics     *metrics.Metrics
	CodeTTL     time.Duration
	CodeLength  int
}

// Service coordinates code issuance and redemption against the entitlement
// ledger, the pending-code table and the settlement log.
type Service struct {
	ledger      *ledger.Ledger
	merchants   MerchantDirectory
	codes       CodeStore
	counters    counter.Allocator
	settlements settlement.Sink
	notifier    notification.Notifier
	metrics     *metrics.Metrics
	ttl         time.Duration
	codeLen     int
	now         func() time.Time
}

// NewService constructs the redemption coordinator.
func NewService(d Deps) (*Service, error) {
	if d.Ledger == nil || d.Merchants == nil || d.Codes == nil || d.Counters == nil || d.Settlements == nil {
		return nil, fmt.Errorf("ledger, merchants, codes, counters and settlements are required")
	}
	if d.CodeTTL <= 0 {
		d.CodeTTL = defaultCodeTTL
	}
	if d.CodeLength <= 0 {
		d.CodeLength = defaultCodeLength
	}
	return &Service{
		ledger:      d.Ledger,
		merchants:   d.Merchants,
		codes:       d.Codes,
		counters:    d.Counters,
		settlements: d.Settlements,
		notifier:    d.Notifier,
		metrics:     d.Metrics,
		ttl:         d.CodeTTL,
		codeLen:     d.CodeLength,
		now:         time.Now,
	}, nil
}

// Summary describes the outcome of a successful redemption.
type Summary struct {
	TransactionID    string
	HouseholdID      string
	MerchantID       string
	AmountRedeemed   int64
	RemainingBalance int64
}

// IssueCode generates a short-lived numeric code for the voucher selection.
// The sufficiency check here is advisory: nothing is locked or debited until
// redemption, which re-validates against the wallet state of that moment.
func (s *Service) IssueCode(ctx context.Context, householdID string, selection map[string]int) (string, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" || len(selection) == 0 {
		return "", ErrInvalidRequest
	}
	if _, err := ledger.Total(selection); err != nil {
		return "", ErrInvalidRequest
	}

	wallet, err := s.ledger.Wallet(ctx, householdID)
	if err != nil {
		return "", err
	}
	if !ledger.Sufficient(wallet, selection) {
		return "", ledger.ErrInsufficientVouchers
	}

	// The code space holds 9*10^(n-1) values, so collisions are rare; the
	// store's Put is the uniqueness check and the insert in one step.
	for {
		pc := PendingCode{
			Code:        s.randomCode(),
			HouseholdID: householdID,
			Selection:   selection,
			CreatedAt:   s.now().UTC(),
		}
		err := s.codes.Put(ctx, pc)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return "", err
		}
		s.metrics.IncCodesIssued()
		return pc.Code, nil
	}
}

// Redeem validates the merchant and code, deducts the selection from the
// household wallet, writes one settlement row per voucher unit and consumes
// the code. The code is taken out of the pending table atomically before any
// further validation, so two redemptions racing on one code cannot both pass
// the existence check; failures before the wallet deduction commits put the
// code back, except expiry, which consumes it.
func (s *Service) Redeem(ctx context.Context, merchantID, code string) (Summary, error) {
	merchantID = strings.TrimSpace(merchantID)
	code = strings.TrimSpace(code)
	if merchantID == "" || code == "" {
		return Summary{}, s.fail(ErrInvalidRequest)
	}

	m, err := s.merchants.Get(ctx, merchantID)
	if err != nil {
		if errors.Is(err, merchant.ErrNotFound) {
			return Summary{}, s.fail(ErrInvalidMerchant)
		}
		return Summary{}, err
	}
	if !m.IsActive() {
		return Summary{}, s.fail(ErrMerchantInactive)
	}

	pending, err := s.codes.Take(ctx, code)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return Summary{}, s.fail(ErrInvalidCode)
		}
		return Summary{}, err
	}

	if s.now().After(pending.CreatedAt.Add(s.ttl)) {
		return Summary{}, s.fail(ErrCodeExpired)
	}

	wallet, err := s.ledger.Wallet(ctx, pending.HouseholdID)
	if err != nil {
		s.restore(ctx, pending)
		return Summary{}, err
	}

	// Authoritative check against the wallet as it is NOW, not as it was
	// when the code was issued.
	if !ledger.Sufficient(wallet, pending.Selection) {
		s.restore(ctx, pending)
		return Summary{}, s.fail(ledger.ErrInsufficientVouchers)
	}

	total, err := ledger.Total(pending.Selection)
	if err != nil || total <= 0 {
		s.restore(ctx, pending)
		return Summary{}, s.fail(ErrInvalidAmount)
	}

	updated, err := s.ledger.Deduct(ctx, pending.HouseholdID, pending.Selection, total)
	if err != nil {
		// Deduction failures put the code back; the caller may retry once
		// the wallet state settles.
		s.restore(ctx, pending)
		return Summary{}, err
	}

	// The deduction committed: from here the code stays consumed even if a
	// downstream step fails, so a retry cannot debit the wallet twice.
	txID, err := s.counters.NextTransactionID(ctx)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.appendSettlementRows(ctx, txID, pending, merchantID, total)
	if err != nil {
		return Summary{}, err
	}

	s.metrics.IncRedemptions()
	s.metrics.AddSettlementRows(rows)

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindRedemption,
			Destination: pending.HouseholdID,
			Body:        fmt.Sprintf("Redeemed %d at merchant %s, remaining balance %d", total, merchantID, updated.Balance),
		})
	}

	return Summary{
		TransactionID:    txID,
		HouseholdID:      pending.HouseholdID,
		MerchantID:       merchantID,
		AmountRedeemed:   total,
		RemainingBalance: updated.Balance,
	}, nil
}

// Balance returns the wallet snapshot for the enquiry path, sweeping expired
// pending codes best-effort first.
func (s *Service) Balance(ctx context.Context, householdID string) (household.Household, error) {
	_ = s.codes.Sweep(ctx)
	return s.ledger.Wallet(ctx, strings.TrimSpace(householdID))
}

// appendSettlementRows writes one row per voucher unit, denominations in
// ascending order, remarks numbered from 1 with the final unit marked.
func (s *Service) appendSettlementRows(ctx context.Context, txID string, pending PendingCode, merchantID string, total int64) (int, error) {
	denoms := make([]string, 0, len(pending.Selection))
	for denom := range pending.Selection {
		denoms = append(denoms, denom)
	}
	sort.Slice(denoms, func(i, j int) bool {
		a, _ := strconv.ParseInt(denoms[i], 10, 64)
		b, _ := strconv.ParseInt(denoms[j], 10, 64)
		return a < b
	})

	totalUnits := 0
	for _, qty := range pending.Selection {
		totalUnits += qty
	}

	redeemedAt := s.now().UTC()
	unit := 1
	for _, denom := range denoms {
		value, _ := strconv.ParseInt(denom, 10, 64)
		for i := 0; i < pending.Selection[denom]; i++ {
			voucherCode, err := s.counters.NextVoucherCode(ctx)
			if err != nil {
				return 0, err
			}
			remark := strconv.Itoa(unit)
			if unit == totalUnits {
				remark = settlement.FinalUnitRemark
			}
			record := settlement.Record{
				TransactionID: txID,
				HouseholdID:   pending.HouseholdID,
				MerchantID:    merchantID,
				Timestamp:     redeemedAt,
				VoucherCode:   voucherCode,
				Denomination:  value,
				TotalAmount:   total,
				Status:        settlement.StatusCompleted,
				Remark:        remark,
			}
			if err := s.settlements.Append(ctx, record); err != nil {
				return 0, err
			}
			unit++
		}
	}
	return totalUnits, nil
}

// restore puts a taken code back after an aborted redemption. Best effort:
// losing a pending code only forces the household to generate a new one.
func (s *Service) restore(ctx context.Context, pending PendingCode) {
	_ = s.codes.Put(ctx, pending)
}

func (s *Service) fail(err error) error {
	s.metrics.IncRedemptionFailure(failureReason(err))
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrInvalidMerchant):
		return "invalid_merchant"
	case errors.Is(err, ErrMerchantInactive):
		return "merchant_inactive"
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrCodeExpired):
		return "code_expired"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ledger.ErrInsufficientVouchers):
		return "insufficient_vouchers"
	default:
		return "other"
	}
}

func (s *Service) randomCode() string {
	lower := 1
	for i := 1; i < s.codeLen; i++ {
		lower *= 10
	}
	return strconv.Itoa(lower + rand.Intn(9*lower))
}
