package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
	"github.com/trunorth/platform/internal/wallet"
)

// RegisterWalletRoutes wires the ledger endpoints onto an authenticated group.
func RegisterWalletRoutes(g fiber.Router, h *wallet.Handler) {
	g.Get("/", h.Get)
	g.Get("/transactions", h.Transactions)
	g.Post("/deposit", h.Deposit)
	g.Post("/withdraw", h.Withdraw)
	g.Post("/transfer", h.Transfer)
	g.Post("/pay", h.Pay)
	g.Put("/:userId/freeze", middleware.RequireRole(identity.RoleAdmin), h.SetFrozen)
}
