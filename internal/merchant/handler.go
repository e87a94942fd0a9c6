package merchant

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes merchant HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a merchant HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name          string `json:"merchant_name"`
	UEN           string `json:"uen"`
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code"`
	BranchCode    string `json:"branch_code"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder_name"`
	Status        string `json:"status"`
}

// Register stores a new merchant.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	m, err := h.service.Register(c.UserContext(), RegisterInput{
		Name:          req.Name,
		UEN:           req.UEN,
		BankName:      req.BankName,
		BankCode:      req.BankCode,
		BranchCode:    req.BranchCode,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUENExists):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidBankCode):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":      "success",
		"merchant_id": m.ID,
	})
}

// Check returns whether a merchant exists.
func (h *Handler) Check(c *fiber.Ctx) error {
	m, err := h.service.Get(c.UserContext(), c.Params("merchantId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "merchant not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status": "exists",
		"name":   m.Name,
	})
}
