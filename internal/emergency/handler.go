package emergency

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes emergency HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an emergency HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func mapEmergencyError(err error) error {
	switch {
	case errors.Is(err, ErrReportNotFound), errors.Is(err, ErrAlertNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(http.StatusForbidden, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

// CreateReport files an emergency report.
func (h *Handler) CreateReport(c *fiber.Ctx) error {
	var req ReportInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	report, err := h.service.CreateReport(c.UserContext(), middleware.ActorFromContext(c), req)
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Emergency report submitted. Help is on the way.",
		"report":  report,
	})
}

// ListReports returns reports visible to the caller, optionally filtered by status.
func (h *Handler) ListReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.UserContext(), middleware.ActorFromContext(c), c.Query("status"))
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"reports": reports})
}

// GetReport returns a single report.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"report": report})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a report through its lifecycle. Dispatcher and admin only.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	report, err := h.service.UpdateStatus(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"), req.Status)
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Report status updated",
		"report":  report,
	})
}

// Respond records the caller as a responder on the report.
func (h *Handler) Respond(c *fiber.Ctx) error {
	report, err := h.service.Respond(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "You are now responding to this emergency",
		"report":  report,
	})
}

type sosRequest struct {
	Location Location `json:"location"`
}

// SOS files a critical report from the one-tap panic button.
func (h *Handler) SOS(c *fiber.Ctx) error {
	var req sosRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	report, err := h.service.SOS(c.UserContext(), middleware.ActorFromContext(c), req.Location)
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "SOS alert sent. Emergency services have been notified.",
		"report":   report,
		"hotlines": Hotlines(),
	})
}

type createAlertRequest struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Message       string   `json:"message"`
	AffectedAreas []string `json:"affectedAreas"`
	ExpiresAt     string   `json:"expiresAt"`
}

// CreateAlert publishes a broadcast alert. Admin only.
func (h *Handler) CreateAlert(c *fiber.Ctx) error {
	var req createAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	var expires time.Time
	if req.ExpiresAt != "" {
		var err error
		expires, err = time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "expiresAt must be an RFC 3339 timestamp")
		}
	}
	alert, err := h.service.CreateAlert(c.UserContext(), middleware.ActorFromContext(c), AlertInput{
		Type:          req.Type,
		Title:         req.Title,
		Message:       req.Message,
		AffectedAreas: req.AffectedAreas,
		ExpiresAt:     expires,
	})
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Alert published",
		"alert":   alert,
	})
}

// ListAlerts returns active broadcast alerts. Public.
func (h *Handler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.ActiveAlerts(c.UserContext())
	if err != nil {
		return mapEmergencyError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"alerts": alerts})
}

// ListHotlines returns the static emergency contact numbers. Public.
func (h *Handler) ListHotlines(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"hotlines": Hotlines()})
}
