package domain

import "time"

// Cart is owned by exactly one user and created lazily on first add.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Lines     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CartLine holds one product reference. Product fields are joined in from
// the live catalog when the cart is read; they are not stored on the line.
type CartLine struct {
	ID          string   `json:"id"`
	CartID      string   `json:"-"`
	ProductID   string   `json:"productId"`
	Quantity    int      `json:"quantity"`
	ProductName string   `json:"productName,omitempty"`
	PriceCents  int64    `json:"priceCents,omitempty"`
	ImageURLs   []string `json:"images,omitempty"`
}
