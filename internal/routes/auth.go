package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/auth"
)

// RegisterAuthRoutes wires registration, login and session endpoints.
func RegisterAuthRoutes(api fiber.Router, h *auth.Handler, loginLimiter fiber.Handler, requireAuth fiber.Handler) {
	g := api.Group("/auth")
	g.Post("/register", h.Register)
	g.Post("/login", loginLimiter, h.Login)
	g.Post("/refresh", h.Refresh)
	g.Get("/me", requireAuth, h.Me)
}
