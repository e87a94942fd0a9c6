package household

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes household HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a household HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	PostalCode string `json:"postal_code"`
	UnitNumber string `json:"unit_number"`
}

// Register provisions a household wallet with the fixed entitlement.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.Register(c.UserContext(), RegisterInput{
		PostalCode: req.PostalCode,
		UnitNumber: req.UnitNumber,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status":       "success",
		"household_id": created.ID,
		"link":         created.ClaimLink,
	})
}

// Get returns a household wallet snapshot.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("householdId")
	found, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "household not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"household_id": found.ID,
		"balance":      found.Balance,
		"vouchers":     found.Vouchers,
	})
}
