package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/assistant"
)

// RegisterAssistantRoutes wires the chat assistant endpoints. Chat and quick
// answers accept anonymous callers; session history requires a session.
func RegisterAssistantRoutes(api fiber.Router, h *assistant.Handler, requireAuth, optionalAuth fiber.Handler) {
	g := api.Group("/ai")
	g.Post("/chat", optionalAuth, h.Chat)
	g.Get("/quick-answers", h.QuickAnswers)
	g.Post("/summarize", requireAuth, h.Summarize)

	g.Get("/sessions", requireAuth, h.Sessions)
	g.Get("/sessions/:id", requireAuth, h.GetSession)
	g.Delete("/sessions/:id", requireAuth, h.DeleteSession)
}
