package events

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes event and ticketing HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an events HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// eventView decorates an event with availability fields.
type eventView struct {
	Event
	AvailableTickets int  `json:"availableTickets"`
	SoldOut          bool `json:"isSoldOut"`
}

func toView(e Event) eventView {
	return eventView{Event: e, AvailableTickets: e.AvailableTickets(), SoldOut: e.SoldOut()}
}

func mapEventError(err error) error {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotEnoughTickets):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

// Categories lists the fixed category set.
func (h *Handler) Categories(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"categories": Categories()})
}

// ListEvents returns upcoming and live events.
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	events, err := h.service.ListEvents(c.UserContext())
	if err != nil {
		return mapEventError(err)
	}
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toView(e))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"events": views})
}

// GetEvent returns a single event.
func (h *Handler) GetEvent(c *fiber.Ctx) error {
	e, err := h.service.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapEventError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"event": toView(e)})
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Venue       string `json:"venue"`
	Address     string `json:"address"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	TicketPrice int64  `json:"ticketPrice"`
	Capacity    int    `json:"capacity"`
	Online      bool   `json:"isOnline"`
	OnlineURL   string `json:"onlineUrl"`
}

// CreateEvent registers a new event.
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req createEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "startDate must be an RFC 3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "endDate must be an RFC 3339 timestamp")
	}
	e, err := h.service.CreateEvent(c.UserContext(), middleware.ActorFromContext(c), CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Venue:       req.Venue,
		Address:     req.Address,
		StartDate:   start,
		EndDate:     end,
		TicketPrice: req.TicketPrice,
		Capacity:    req.Capacity,
		Online:      req.Online,
		OnlineURL:   req.OnlineURL,
	})
	if err != nil {
		return mapEventError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Event created", "event": toView(e)})
}

type purchaseRequest struct {
	Quantity int `json:"quantity"`
}

// PurchaseTickets buys tickets to an event.
func (h *Handler) PurchaseTickets(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	t, err := h.service.PurchaseTickets(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"), req.Quantity)
	if err != nil {
		return mapEventError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Ticket purchased", "ticket": t})
}

// MyTickets lists the caller's tickets.
func (h *Handler) MyTickets(c *fiber.Ctx) error {
	ts, err := h.service.MyTickets(c.UserContext(), middleware.ActorFromContext(c).ID)
	if err != nil {
		return mapEventError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"tickets": ts})
}
