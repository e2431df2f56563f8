package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/donations"
)

// RegisterDonationRoutes wires crowdfunding endpoints. Donations accept
// anonymous callers.
func RegisterDonationRoutes(api fiber.Router, h *donations.Handler, requireAuth, optionalAuth fiber.Handler) {
	g := api.Group("/donations")
	g.Get("/campaigns", h.ListCampaigns)
	g.Get("/campaigns/:id", h.GetCampaign)
	g.Post("/campaigns/:id/donate", optionalAuth, h.Donate)

	g.Post("/campaigns", requireAuth, h.CreateCampaign)
	g.Get("/my-campaigns", requireAuth, h.MyCampaigns)
	g.Get("/my-donations", requireAuth, h.MyDonations)
}
