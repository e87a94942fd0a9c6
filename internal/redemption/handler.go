package redemption

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/relief-vouchers/relief_vouchers/internal/household"
	"github.com/relief-vouchers/relief_vouchers/internal/ledger"
)

// Handler exposes the enquiry and redemption endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a redemption handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type issueRequest struct {
	HouseholdID string         `json:"household_id"`
	Vouchers    map[string]int `json:"vouchers"`
}

// IssueCode generates a redemption code for a voucher selection.
func (h *Handler) IssueCode(c *fiber.Ctx) error {
	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	code, err := h.service.IssueCode(c.UserContext(), req.HouseholdID, req.Vouchers)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, household.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "household not found")
		case errors.Is(err, ledger.ErrInsufficientVouchers):
			return fiber.NewError(http.StatusBadRequest, "insufficient vouchers")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "success",
		"code":   code,
	})
}

type redeemRequest struct {
	MerchantID string `json:"merchant_id"`
	Code       string `json:"code"`
}

// Redeem consumes a redemption code on behalf of a merchant.
func (h *Handler) Redeem(c *fiber.Ctx) error {
	var req redeemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Redeem(c.UserContext(), req.MerchantID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidMerchant):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrMerchantInactive):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidCode):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrCodeExpired):
			return fiber.NewError(http.StatusGone, err.Error())
		case errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrInsufficientVouchers):
			return fiber.NewError(http.StatusBadRequest, "insufficient vouchers")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient funds")
		case errors.Is(err, household.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "household not found")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transaction_id":    summary.TransactionID,
		"household_id":      summary.HouseholdID,
		"merchant_id":       summary.MerchantID,
		"amount_redeemed":   summary.AmountRedeemed,
		"remaining_balance": summary.RemainingBalance,
	})
}

// Balance serves the household enquiry path.
func (h *Handler) Balance(c *fiber.Ctx) error {
	wallet, err := h.service.Balance(c.UserContext(), c.Params("householdId"))
	if err != nil {
		if errors.Is(err, household.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "household not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"balance":  wallet.Balance,
		"vouchers": wallet.Vouchers,
	})
}
