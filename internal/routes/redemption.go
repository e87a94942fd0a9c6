package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relief-vouchers/relief_vouchers/internal/redemption"
)

// RegisterRedemptionRoutes wires code issuance, redemption and the balance
// enquiry. Issuance sits behind the per-household rate limiter.
func RegisterRedemptionRoutes(r fiber.Router, h *redemption.Handler, issueLimiter fiber.Handler) {
	r.Post("/codes", issueLimiter, h.IssueCode)
	r.Post("/redemptions", h.Redeem)
	r.Get("/households/:householdId/balance", h.Balance)
}
