package social

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes community feed HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a social feed HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func mapSocialError(err error) error {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost publishes a feed entry.
func (h *Handler) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	post, err := h.service.CreatePost(c.UserContext(), middleware.ActorFromContext(c), req.Content)
	if err != nil {
		return mapSocialError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Post published",
		"post":    post,
	})
}

// Feed returns the community feed, newest first.
func (h *Handler) Feed(c *fiber.Ctx) error {
	posts, err := h.service.Feed(c.UserContext())
	if err != nil {
		return mapSocialError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"posts": posts})
}

// Like increments a post's like counter.
func (h *Handler) Like(c *fiber.Ctx) error {
	post, err := h.service.Like(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapSocialError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"post": post})
}
