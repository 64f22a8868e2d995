package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartModeName string

const (
	CartModeGuest         CartModeName = "guest"
	CartModeAuthenticated CartModeName = "authenticated"
)

// GuestLine is an unauthenticated cart entry. Guest lines live in Redis and carry
// no product data.
type GuestLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartProduct is the product projection joined onto a cart line at read time.
type CartProduct struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Slug   string          `json:"slug"`
	SKU    string          `json:"sku,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Images []ProductImage  `json:"images"`
}

type CartLine struct {
	ID        uuid.UUID   `json:"id"`
	CartID    uuid.UUID   `json:"cart_id"`
	ProductID uuid.UUID   `json:"product_id"`
	Quantity  int         `json:"quantity"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Product   CartProduct `json:"product"`
}

type CartView struct {
	Mode       CartModeName    `json:"mode"`
	CartID     *uuid.UUID      `json:"cart_id,omitempty"`
	Lines      []CartLine      `json:"lines"`
	GuestLines []GuestLine     `json:"guest_lines"`
	ItemCount  int             `json:"item_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	IsOpen     bool            `json:"is_open"`
}

type CartSummary struct {
	ItemCount int `json:"item_count"`
	OrderTotals
	FreeShipping          bool            `json:"free_shipping"`
	FreeShippingRemaining decimal.Decimal `json:"free_shipping_remaining"`
}

// Quantity below 1 is treated as 1.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// Quantity of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ToggleCartResponse struct {
	IsOpen bool `json:"is_open"`
}
