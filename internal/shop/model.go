package shop

import "time"

// Product conditions.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Categories returns the fixed product category list.
func Categories() []string {
	return []string{
		"electronics", "fashion", "home", "beauty", "sports",
		"vehicles", "services", "agriculture", "other",
	}
}

// Product is a marketplace listing. Prices are integer minor units.
type Product struct {
	ID            string    `json:"id"`
	SellerID      string    `json:"sellerId"`
	SellerName    string    `json:"sellerName"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	Currency      string    `json:"currency"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Images        []string  `json:"images"`
	StockQuantity int       `json:"stockQuantity"`
	Available     bool      `json:"isAvailable"`
	Featured      bool      `json:"isFeatured"`
	Condition     string    `json:"condition"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ShippingAddress is the delivery destination on an order.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
}

// Order tracks a purchase through its fulfilment lifecycle.
type Order struct {
	ID              string          `json:"id"`
	BuyerID         string          `json:"buyerId"`
	BuyerName       string          `json:"buyerName"`
	SellerID        string          `json:"sellerId"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	TotalAmount     int64           `json:"totalAmount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}
