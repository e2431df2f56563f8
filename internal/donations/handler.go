package donations

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes crowdfunding HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a donations HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// campaignView decorates a campaign with its derived progress fields.
type campaignView struct {
	Campaign
	Progress float64 `json:"progress"`
	DaysLeft int     `json:"daysLeft"`
}

func toView(c Campaign) campaignView {
	return campaignView{Campaign: c, Progress: c.Progress(), DaysLeft: c.DaysLeft()}
}

func mapDonationError(err error) error {
	switch {
	case errors.Is(err, ErrCampaignNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCampaignClosed):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

// ListCampaigns returns active campaigns.
func (h *Handler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.service.ListCampaigns(c.UserContext(), CampaignFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return mapDonationError(err)
	}
	views := make([]campaignView, 0, len(campaigns))
	for _, cm := range campaigns {
		views = append(views, toView(cm))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"campaigns": views})
}

// GetCampaign returns campaign details with recent donations.
func (h *Handler) GetCampaign(c *fiber.Ctx) error {
	campaign, recent, err := h.service.GetCampaign(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapDonationError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"campaign":  toView(campaign),
		"donations": recent,
	})
}

type createCampaignRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetAmount int64  `json:"targetAmount"`
	Category     string `json:"category"`
	Deadline     string `json:"deadline"`
}

// CreateCampaign opens a new campaign.
func (h *Handler) CreateCampaign(c *fiber.Ctx) error {
	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "deadline must be an RFC 3339 timestamp")
	}
	campaign, err := h.service.CreateCampaign(c.UserContext(), middleware.ActorFromContext(c), CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Deadline:     deadline,
	})
	if err != nil {
		return mapDonationError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Campaign created successfully",
		"campaign": toView(campaign),
	})
}

type donateRequest struct {
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
	Anonymous bool   `json:"isAnonymous"`
}

// Donate records a contribution. Works for anonymous callers too.
func (h *Handler) Donate(c *fiber.Ctx) error {
	var req donateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	donation, campaign, err := h.service.Donate(c.UserContext(), middleware.ActorFromContext(c), DonateInput{
		CampaignID: c.Params("id"),
		Amount:     req.Amount,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
	})
	if err != nil {
		return mapDonationError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "Donation successful. Thank you for your generosity!",
		"donation": donation,
		"campaign": toView(campaign),
	})
}

// MyCampaigns lists campaigns created by the caller.
func (h *Handler) MyCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.service.MyCampaigns(c.UserContext(), middleware.ActorFromContext(c).ID)
	if err != nil {
		return mapDonationError(err)
	}
	views := make([]campaignView, 0, len(campaigns))
	for _, cm := range campaigns {
		views = append(views, toView(cm))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"campaigns": views})
}

// MyDonations lists the caller's donation history.
func (h *Handler) MyDonations(c *fiber.Ctx) error {
	ds, err := h.service.MyDonations(c.UserContext(), middleware.ActorFromContext(c).ID)
	if err != nil {
		return mapDonationError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"donations": ds})
}
