package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/social"
)

// RegisterSocialRoutes wires the community feed endpoints.
func RegisterSocialRoutes(api fiber.Router, h *social.Handler, requireAuth fiber.Handler) {
	g := api.Group("/social")
	g.Get("/posts", h.Feed)
	g.Post("/posts", requireAuth, h.CreatePost)
	g.Post("/posts/:id/like", requireAuth, h.Like)
}
