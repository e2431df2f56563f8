package shop

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/identity"
	"github.com/trunorth/platform/internal/middleware"
)

// ErrNotOwner indicates the caller is neither the resource owner nor an admin.
var ErrNotOwner = errors.New("not authorized for this resource")

// ErrInvalidTransition indicates an order status change the caller may not make.
var ErrInvalidTransition = errors.New("order status transition not allowed")

// Service implements marketplace operations.
type Service struct {
	repo     Repository
	currency string
}

// NewService builds a shop service.
func NewService(repo Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

// ProductFilter narrows and orders a product listing. Zero values leave the
// corresponding dimension unfiltered.
type ProductFilter struct {
	Category  string
	Search    string
	MinPrice  int64
	MaxPrice  int64
	Condition string
	SortBy    string // price_asc | price_desc | newest | "" (featured first)
}

// ListProducts returns available products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	all, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(filter.Search)
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if !p.Available {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		if filter.Condition != "" && p.Condition != filter.Condition {
			continue
		}
		out = append(out, p)
	}

	switch filter.SortBy {
	case "price_asc":
		sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price_desc":
		sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "newest":
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}
	return out, nil
}

// GetProduct returns a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.repo.Product(ctx, id)
}

// CreateProductInput captures a new listing.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         int64
	Category      string
	Subcategory   string
	Condition     string
	StockQuantity int
}

func (in CreateProductInput) validate() error {
	if len(in.Name) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	if len(in.Description) < 10 {
		return errors.New("description must be at least 10 characters")
	}
	if in.Price <= 0 {
		return errors.New("price must be positive")
	}
	if in.StockQuantity < 0 {
		return errors.New("stock quantity cannot be negative")
	}
	switch in.Condition {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
	default:
		return errors.New("condition must be new, used or refurbished")
	}
	return nil
}

// CreateProduct lists a new product for the seller.
func (s *Service) CreateProduct(ctx context.Context, seller middleware.Actor, input CreateProductInput) (Product, error) {
	if err := input.validate(); err != nil {
		return Product{}, err
	}
	name := seller.Name
	if name == "" {
		name = "Unknown"
	}
	p := Product{
		ID:            uuid.New().String(),
		SellerID:      seller.ID,
		SellerName:    name,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Currency:      s.currency,
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Images:        []string{},
		StockQuantity: input.StockQuantity,
		Available:     true,
		Condition:     input.Condition,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProductInput carries optional field updates; nil pointers leave the
// existing value in place.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *int64
	StockQuantity *int
	Available     *bool
}

// UpdateProduct modifies a listing owned by the caller (or any, for admins).
func (s *Service) UpdateProduct(ctx context.Context, actor middleware.Actor, id string, input UpdateProductInput) (Product, error) {
	p, err := s.repo.Product(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if p.SellerID != actor.ID && actor.Role != identity.RoleAdmin {
		return Product{}, ErrNotOwner
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.StockQuantity != nil {
		p.StockQuantity = *input.StockQuantity
	}
	if input.Available != nil {
		p.Available = *input.Available
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a listing owned by the caller (or any, for admins).
func (s *Service) DeleteProduct(ctx context.Context, actor middleware.Actor, id string) error {
	p, err := s.repo.Product(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != actor.ID && actor.Role != identity.RoleAdmin {
		return ErrNotOwner
	}
	return s.repo.DeleteProduct(ctx, id)
}

// MyProducts lists the caller's products, newest first.
func (s *Service) MyProducts(ctx context.Context, sellerID string) ([]Product, error) {
	all, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0)
	for _, p := range all {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateOrderInput captures a purchase request.
type CreateOrderInput struct {
	ProductID       string
	Quantity        int
	ShippingAddress ShippingAddress
}

// CreateOrder places an order, decrementing stock.
func (s *Service) CreateOrder(ctx context.Context, buyer middleware.Actor, input CreateOrderInput) (Order, error) {
	if input.Quantity <= 0 {
		return Order{}, errors.New("quantity must be positive")
	}
	p, err := s.repo.Product(ctx, input.ProductID)
	if err != nil {
		return Order{}, err
	}

	o := Order{
		ID:              uuid.New().String(),
		BuyerID:         buyer.ID,
		BuyerName:       buyer.Name,
		SellerID:        p.SellerID,
		ProductID:       p.ID,
		ProductName:     p.Name,
		Quantity:        input.Quantity,
		TotalAmount:     p.Price * int64(input.Quantity),
		Currency:        s.currency,
		Status:          OrderPending,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.PlaceOrder(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Orders lists the caller's orders as buyer or seller, newest first.
func (s *Service) Orders(ctx context.Context, userID, as string) ([]Order, error) {
	all, err := s.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0)
	for _, o := range all {
		if as == "seller" && o.SellerID == userID {
			out = append(out, o)
		} else if as != "seller" && o.BuyerID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetOrder returns an order visible to its buyer, seller, or an admin.
func (s *Service) GetOrder(ctx context.Context, actor middleware.Actor, id string) (Order, error) {
	o, err := s.repo.Order(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.BuyerID != actor.ID && o.SellerID != actor.ID && actor.Role != identity.RoleAdmin {
		return Order{}, ErrNotOwner
	}
	return o, nil
}

var orderTransitions = map[string][]string{
	"seller": {OrderConfirmed, OrderShipped, OrderCancelled},
	"buyer":  {OrderCancelled, OrderRefunded},
	"admin":  {OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded},
}

// UpdateOrderStatus applies a status change if the caller's relation to the
// order allows it.
func (s *Service) UpdateOrderStatus(ctx context.Context, actor middleware.Actor, id, status string) (Order, error) {
	o, err := s.repo.Order(ctx, id)
	if err != nil {
		return Order{}, err
	}

	var allowed []string
	switch {
	case actor.Role == identity.RoleAdmin:
		allowed = orderTransitions["admin"]
	case o.SellerID == actor.ID:
		allowed = orderTransitions["seller"]
	case o.BuyerID == actor.ID:
		allowed = orderTransitions["buyer"]
	default:
		return Order{}, ErrNotOwner
	}

	permitted := false
	for _, st := range allowed {
		if st == status {
			permitted = true
			break
		}
	}
	if !permitted {
		return Order{}, ErrInvalidTransition
	}

	o.Status = status
	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}
