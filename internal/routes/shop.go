package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/shop"
)

// RegisterShopRoutes wires marketplace endpoints. Browsing is public; listing
// and ordering require a session.
func RegisterShopRoutes(api fiber.Router, h *shop.Handler, requireAuth fiber.Handler) {
	g := api.Group("/shop")
	g.Get("/categories", h.Categories)
	g.Get("/products", h.ListProducts)
	g.Get("/products/:id", h.GetProduct)

	g.Post("/products", requireAuth, h.CreateProduct)
	g.Put("/products/:id", requireAuth, h.UpdateProduct)
	g.Delete("/products/:id", requireAuth, h.DeleteProduct)
	g.Get("/my-products", requireAuth, h.MyProducts)

	g.Post("/orders", requireAuth, h.CreateOrder)
	g.Get("/orders", requireAuth, h.ListOrders)
	g.Get("/orders/:id", requireAuth, h.GetOrder)
	g.Put("/orders/:id/status", requireAuth, h.UpdateOrderStatus)
}
