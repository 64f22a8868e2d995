package pricing_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(price string, qty int) models.CartLine {
	return models.CartLine{Quantity: qty, Product: models.CartProduct{Price: dec(price)}}
}

func TestSubtotal(t *testing.T) {
	lines := []models.CartLine{line("10", 2), line("5", 3)}

	assert.True(t, dec("35").Equal(pricing.Subtotal(lines)))
	assert.True(t, decimal.Zero.Equal(pricing.Subtotal(nil)))
}

func TestCompute(t *testing.T) {
	policy := pricing.DefaultPolicy()

	tests := []struct {
		name     string
		subtotal string
		shipping string
		tax      string
		total    string
	}{
		{"above threshold ships free", "60", "0", "4.8", "64.8"},
		{"below threshold pays shipping", "20", "10", "1.6", "31.6"},
		{"exactly at threshold pays shipping", "50", "10", "4", "64"},
		{"tax rounds to cents", "12.34", "10", "0.99", "23.33"},
		{"empty cart", "0", "10", "0", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Compute(dec(tt.subtotal))

			assert.True(t, dec(tt.shipping).Equal(got.Shipping), "shipping: %s", got.Shipping)
			assert.True(t, dec(tt.tax).Equal(got.Tax), "tax: %s", got.Tax)
			assert.True(t, dec(tt.total).Equal(got.Total), "total: %s", got.Total)
			assert.True(t, got.Discount.IsZero())
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	policy := pricing.PolicyFromConfig(config.Checkout{TaxRate: 0.1, FreeShippingThreshold: 100, ShippingFee: 9.99})

	got := policy.Compute(dec("40"))
	assert.True(t, dec("9.99").Equal(got.Shipping))
	assert.True(t, dec("4").Equal(got.Tax))
	assert.True(t, dec("53.99").Equal(got.Total))
}

func TestSummary(t *testing.T) {
	policy := pricing.DefaultPolicy()

	t.Run("below threshold", func(t *testing.T) {
		summary := policy.Summary([]models.CartLine{line("15", 2)}, 2)

		assert.False(t, summary.FreeShipping)
		assert.True(t, dec("20").Equal(summary.FreeShippingRemaining))
		assert.Equal(t, 2, summary.ItemCount)
	})

	t.Run("at threshold still needs a cent", func(t *testing.T) {
		summary := policy.Summary([]models.CartLine{line("25", 2)}, 2)

		assert.False(t, summary.FreeShipping)
		assert.True(t, dec("0.01").Equal(summary.FreeShippingRemaining))
	})

	t.Run("free shipping", func(t *testing.T) {
		summary := policy.Summary([]models.CartLine{line("30", 2)}, 2)

		assert.True(t, summary.FreeShipping)
		assert.True(t, summary.FreeShippingRemaining.IsZero())
	})
}
