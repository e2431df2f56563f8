package assistant

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes assistant HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an assistant HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func mapAssistantError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
}

// Chat answers a single user message, creating a session when needed.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	reply, session, err := h.service.Chat(c.UserContext(), middleware.ActorFromContext(c), ChatInput{
		Message:   req.Message,
		SessionID: req.SessionID,
		Language:  req.Language,
	})
	if err != nil {
		return mapAssistantError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":   reply,
		"sessionId": session.ID,
	})
}

// Sessions lists the caller's chat sessions.
func (h *Handler) Sessions(c *fiber.Ctx) error {
	sessions, err := h.service.Sessions(c.UserContext(), middleware.ActorFromContext(c).ID)
	if err != nil {
		return mapAssistantError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"sessions": sessions})
}

// GetSession returns a full session transcript.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	session, err := h.service.Session(c.UserContext(), middleware.ActorFromContext(c).ID, c.Params("id"))
	if err != nil {
		return mapAssistantError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"session": session})
}

// DeleteSession removes a session.
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.UserContext(), middleware.ActorFromContext(c).ID, c.Params("id")); err != nil {
		return mapAssistantError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Session deleted"})
}

// QuickAnswers returns canned question/answer pairs for the chat screen.
func (h *Handler) QuickAnswers(c *fiber.Ctx) error {
	lang := c.Query("language")
	return c.Status(http.StatusOK).JSON(fiber.Map{"quickAnswers": h.service.QuickAnswers(lang)})
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// Summarize condenses a block of text.
func (h *Handler) Summarize(c *fiber.Ctx) error {
	var req summarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	summary, err := h.service.Summarize(req.Text)
	if err != nil {
		return mapAssistantError(err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}
