package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/events"
)

// RegisterEventRoutes wires event discovery and ticketing endpoints.
func RegisterEventRoutes(api fiber.Router, h *events.Handler, requireAuth fiber.Handler) {
	g := api.Group("/events")
	g.Get("/categories", h.Categories)
	g.Get("/", h.ListEvents)
	g.Get("/:id", h.GetEvent)

	g.Post("/", requireAuth, h.CreateEvent)
	g.Post("/:id/tickets", requireAuth, h.PurchaseTickets)
	g.Get("/me/tickets", requireAuth, h.MyTickets)
}
