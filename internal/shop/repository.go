package shop

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrProductNotFound indicates a missing product.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates a missing order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOutOfStock indicates the requested quantity exceeds available stock.
	ErrOutOfStock = errors.New("product not available in requested quantity")
)

// Repository persists products and orders. PlaceOrder must check and decrement
// stock atomically.
type Repository interface {
	CreateProduct(ctx context.Context, p Product) error
	Product(ctx context.Context, id string) (Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id string) error
	Products(ctx context.Context) ([]Product, error)

	PlaceOrder(ctx context.Context, o Order) error
	Order(ctx context.Context, id string) (Order, error)
	UpdateOrder(ctx context.Context, o Order) error
	Orders(ctx context.Context) ([]Order, error)
}

type memoryRepository struct {
	mu       sync.RWMutex
	products map[string]Product
	orders   map[string]Order
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		products: make(map[string]Product),
		orders:   make(map[string]Order),
	}
}

func (r *memoryRepository) CreateProduct(_ context.Context, p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *memoryRepository) Product(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *memoryRepository) UpdateProduct(_ context.Context, p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *memoryRepository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryRepository) Products(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryRepository) PlaceOrder(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[o.ProductID]
	if !ok {
		return ErrProductNotFound
	}
	if !p.Available || p.StockQuantity < o.Quantity {
		return ErrOutOfStock
	}
	p.StockQuantity -= o.Quantity
	r.products[p.ID] = p
	r.orders[o.ID] = o
	return nil
}

func (r *memoryRepository) Order(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (r *memoryRepository) UpdateOrder(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return ErrOrderNotFound
	}
	r.orders[o.ID] = o
	return nil
}

func (r *memoryRepository) Orders(_ context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}
