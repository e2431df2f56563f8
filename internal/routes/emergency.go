package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/emergency"
	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
)

// RegisterEmergencyRoutes wires reports, alerts, hotlines and the SOS
// trigger. Reports and SOS accept anonymous callers.
func RegisterEmergencyRoutes(api fiber.Router, h *emergency.Handler, requireAuth, optionalAuth fiber.Handler) {
	g := api.Group("/emergency")
	g.Get("/hotlines", h.ListHotlines)
	g.Get("/alerts", h.ListAlerts)
	g.Post("/alerts", requireAuth, middleware.RequireRole(identity.RoleAdmin), h.CreateAlert)

	g.Post("/sos", optionalAuth, h.SOS)
	g.Post("/reports", optionalAuth, h.CreateReport)
	g.Get("/reports", requireAuth, h.ListReports)
	g.Get("/reports/:id", requireAuth, h.GetReport)
	g.Put("/reports/:id/status", requireAuth, middleware.RequireRole(identity.RoleAdmin, identity.RoleDispatcher), h.UpdateStatus)
	g.Post("/reports/:id/respond", requireAuth, middleware.RequireRole(identity.RoleAdmin, identity.RoleResponder), h.Respond)
}
