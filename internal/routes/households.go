package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relief-vouchers/relief_vouchers/internal/household"
)

// RegisterHouseholdRoutes wires household registration and lookup.
func RegisterHouseholdRoutes(r fiber.Router, h *household.Handler) {
	r.Post("/households", h.Register)
	r.Get("/households/:householdId", h.Get)
}
