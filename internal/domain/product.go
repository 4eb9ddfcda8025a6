package domain

import "time"

// ProductImage is a reference into the external image store.
type ProductImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"priceCents"`
	Category    string         `json:"category,omitempty"`
	Stock       int            `json:"stock"`
	Images      []ProductImage `json:"images"`
	IsDeleted   bool           `json:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint";
// price bounds are inclusive and apply independently.
type ProductFilter struct {
	Keyword       string
	Category      string
	MinPriceCents *int64
	MaxPriceCents *int64
	Sort          string
}

// Sort values accepted by catalog listing.
const (
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortLatest    = "latest"
)
