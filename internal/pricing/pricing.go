// Package pricing holds the single pricing policy shared by the cart summary
// and the checkout charge.
package pricing

import (
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type Policy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.NewFromInt(10),
	}
}

func PolicyFromConfig(cfg config.Checkout) Policy {
	return Policy{
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		ShippingFee:           decimal.NewFromFloat(cfg.ShippingFee),
	}
}

// Compute derives the order totals for a subtotal. Shipping is waived only when
// the subtotal is strictly above the threshold.
func (p Policy) Compute(subtotal decimal.Decimal) models.OrderTotals {
	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(p.TaxRate).Round(2)

	return models.OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: decimal.Zero,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// Summary is the cart panel estimate.
func (p Policy) Summary(lines []models.CartLine, itemCount int) models.CartSummary {
	subtotal := Subtotal(lines)
	totals := p.Compute(subtotal)

	remaining := p.FreeShippingThreshold.Sub(subtotal)
	if !totals.Shipping.IsZero() && remaining.IsZero() {
		remaining = decimal.RequireFromString("0.01")
	}

	if remaining.IsNegative() || totals.Shipping.IsZero() {
		remaining = decimal.Zero
	}

	return models.CartSummary{
		ItemCount:             itemCount,
		OrderTotals:           totals,
		FreeShipping:          totals.Shipping.IsZero(),
		FreeShippingRemaining: remaining,
	}
}

// Subtotal sums price times quantity.
func Subtotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero

	for _, line := range lines {
		total = total.Add(LineTotal(line.Product.Price, line.Quantity))
	}

	return total
}

func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
