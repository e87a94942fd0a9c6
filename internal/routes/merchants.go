package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relief-vouchers/relief_vouchers/internal/merchant"
)

// RegisterMerchantRoutes wires merchant onboarding and lookup.
func RegisterMerchantRoutes(r fiber.Router, h *merchant.Handler) {
	r.Post("/merchants", h.Register)
	r.Get("/merchants/:merchantId", h.Check)
}
