package shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trunorth/platform/internal/middleware"
)

// Handler exposes marketplace HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a shop HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func mapShopError(err error) error {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrOrderNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrOutOfStock), errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}

// Categories lists the fixed category set.
func (h *Handler) Categories(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"categories": Categories()})
}

// ListProducts returns available products matching query filters.
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	filter := ProductFilter{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Condition: c.Query("condition"),
		SortBy:    c.Query("sortBy"),
	}
	if v := c.Query("minPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinPrice = n
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxPrice = n
		}
	}
	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": products})
}

// GetProduct returns a single listing.
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	p, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"product": p})
}

type createProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Category      string `json:"category"`
	Subcategory   string `json:"subcategory"`
	Condition     string `json:"condition"`
	StockQuantity int    `json:"stockQuantity"`
}

// CreateProduct lists a new product for the authenticated seller.
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.CreateProduct(c.UserContext(), middleware.ActorFromContext(c), CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Condition:     req.Condition,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Product listed successfully",
		"product": p,
	})
}

type updateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	StockQuantity *int    `json:"stockQuantity"`
	Available     *bool   `json:"isAvailable"`
}

// UpdateProduct modifies an existing listing.
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.UpdateProduct(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"), UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Available:     req.Available,
	})
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Product updated", "product": p})
}

// DeleteProduct removes a listing.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), middleware.ActorFromContext(c), c.Params("id")); err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Product deleted"})
}

// MyProducts lists the caller's products.
func (h *Handler) MyProducts(c *fiber.Ctx) error {
	products, err := h.service.MyProducts(c.UserContext(), middleware.ActorFromContext(c).ID)
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"products": products})
}

type createOrderRequest struct {
	ProductID       string          `json:"productId"`
	Quantity        int             `json:"quantity"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// CreateOrder places an order against a listing.
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	o, err := h.service.CreateOrder(c.UserContext(), middleware.ActorFromContext(c), CreateOrderInput{
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":             "Order placed successfully",
		"order":               o,
		"paymentInstructions": "Proceed to wallet to complete payment",
	})
}

// ListOrders returns the caller's purchases, or sales with ?type=seller.
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.Orders(c.UserContext(), middleware.ActorFromContext(c).ID, c.Query("type"))
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"orders": orders})
}

// GetOrder returns a single order.
func (h *Handler) GetOrder(c *fiber.Ctx) error {
	o, err := h.service.GetOrder(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"))
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"order": o})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order through its lifecycle.
func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req orderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	o, err := h.service.UpdateOrderStatus(c.UserContext(), middleware.ActorFromContext(c), c.Params("id"), req.Status)
	if err != nil {
		return mapShopError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Order status updated", "order": o})
}
