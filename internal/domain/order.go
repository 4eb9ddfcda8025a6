package domain

import "time"

// Order status lifecycle: pending -> shipped -> delivered, with cancellation
// allowed while not delivered. delivered and cancelled are terminal.
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine snapshots a product reference, quantity and unit price at
// order-creation time. Later catalog edits never change placed orders.
type OrderLine struct {
	ID             string   `json:"id"`
	OrderID        string   `json:"-"`
	ProductID      string   `json:"productId"`
	Quantity       int      `json:"quantity"`
	UnitPriceCents int64    `json:"unitPriceCents"`
	ProductName    string   `json:"productName,omitempty"`
	ImageURLs      []string `json:"images,omitempty"`
}

type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Lines        []OrderLine `json:"items"`
	TotalCents   int64       `json:"totalCents"`
	Address      string      `json:"address"`
	Status       string      `json:"status"`
	DeliveryDate time.Time   `json:"deliveryDate"`
	CreatedAt    time.Time   `json:"createdAt"`

	// Joined on admin listings only.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}
