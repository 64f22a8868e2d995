package checkout_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validShipping() models.ShippingDetails {
	return models.ShippingDetails{
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Address1:   "12 Analytical St",
		City:       "London",
		State:      "LDN",
		PostalCode: "N1 9GU",
		Country:    "GB",
	}
}

func validPayment() models.PaymentDetails {
	return models.PaymentDetails{CardNumber: "4242424242424242", Expiry: "12/30", CVV: "123"}
}

func TestNew(t *testing.T) {
	t.Run("Blank form defaults country", func(t *testing.T) {
		f := checkout.New(nil)

		assert.Equal(t, checkout.StepShipping, f.Step)
		assert.Equal(t, "US", f.Form.Shipping.Country)
		assert.Empty(t, f.Form.Shipping.Email)
	})

	t.Run("Pre-filled from profile", func(t *testing.T) {
		f := checkout.New(&models.Profile{ID: uuid.New(), Email: "ada@example.com", FullName: "Ada Lovelace"})

		assert.Equal(t, "ada@example.com", f.Form.Shipping.Email)
		assert.Equal(t, "Ada Lovelace", f.Form.Shipping.FullName)
	})
}

func TestAdvance_ShippingStep(t *testing.T) {
	required := map[string]func(*models.ShippingDetails){
		"full_name":   func(s *models.ShippingDetails) { s.FullName = "" },
		"email":       func(s *models.ShippingDetails) { s.Email = "" },
		"address1":    func(s *models.ShippingDetails) { s.Address1 = "   " },
		"city":        func(s *models.ShippingDetails) { s.City = "" },
		"state":       func(s *models.ShippingDetails) { s.State = "\t" },
		"postal_code": func(s *models.ShippingDetails) { s.PostalCode = "" },
		"country":     func(s *models.ShippingDetails) { s.Country = " " },
	}

	for name, blank := range required {
		t.Run("Blank "+name+" blocks", func(t *testing.T) {
			f := checkout.New(nil)
			f.Form.Shipping = validShipping()
			blank(&f.Form.Shipping)

			submit, err := f.Advance()

			require.Error(t, err)
			assert.False(t, submit)
			assert.Equal(t, checkout.StepShipping, f.Step)

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.ErrCodeStepValidation, appErr.Code)
			assert.Equal(t, 1, appErr.Step)
			assert.Contains(t, appErr.Detail, name)
		})
	}

	t.Run("Optional fields may be blank", func(t *testing.T) {
		f := checkout.New(nil)
		f.Form.Shipping = validShipping()

		submit, err := f.Advance()

		require.NoError(t, err)
		assert.False(t, submit)
		assert.Equal(t, checkout.StepPayment, f.Step)
	})
}

func TestAdvance_PaymentStep(t *testing.T) {
	t.Run("Missing CVV blocks", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 2, Shipping: validShipping()})
		f.Form.Payment = validPayment()
		f.Form.Payment.CVV = ""

		_, err := f.Advance()

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 2, appErr.Step)
		assert.Equal(t, checkout.StepPayment, f.Step)
	})

	t.Run("No format check", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 2, Shipping: validShipping()})
		f.Form.Payment = models.PaymentDetails{CardNumber: "x", Expiry: "y", CVV: "z"}

		_, err := f.Advance()

		require.NoError(t, err)
		assert.Equal(t, checkout.StepReview, f.Step)
	})
}

func TestAdvance_ReviewStepSubmits(t *testing.T) {
	f := checkout.Restore(models.CheckoutState{Step: 3, Shipping: validShipping()})

	submit, err := f.Advance()

	require.NoError(t, err)
	assert.True(t, submit)
	assert.Equal(t, checkout.StepReview, f.Step)
}

func TestAdvance_LaterStepsRecheckShipping(t *testing.T) {
	for _, step := range []int{2, 3} {
		t.Run(checkout.Step(step).String(), func(t *testing.T) {
			f := checkout.Restore(models.CheckoutState{Step: step, Shipping: validShipping()})
			f.Form.Payment = validPayment()
			f.Form.Shipping.Address1 = ""

			submit, err := f.Advance()

			require.Error(t, err)
			assert.False(t, submit)
			assert.Equal(t, checkout.StepShipping, f.Step)

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 1, appErr.Step)
			assert.Contains(t, appErr.Detail, "address1")
		})
	}
}

func TestSetShipping(t *testing.T) {
	t.Run("Blank country defaults", func(t *testing.T) {
		f := checkout.New(nil)
		shipping := validShipping()
		shipping.Country = ""

		f.SetShipping(shipping)

		assert.Equal(t, checkout.DefaultCountry, f.Form.Shipping.Country)
		assert.Equal(t, checkout.StepShipping, f.Step)
	})

	t.Run("Incomplete address past step one resets", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 3, Shipping: validShipping()})

		f.SetShipping(models.ShippingDetails{})

		assert.Equal(t, checkout.StepShipping, f.Step)
		assert.Equal(t, "US", f.Form.Shipping.Country)
	})

	t.Run("Complete address keeps the step", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 3, Shipping: validShipping()})
		shipping := validShipping()
		shipping.City = "Chicago"

		f.SetShipping(shipping)

		assert.Equal(t, checkout.StepReview, f.Step)
		assert.Equal(t, "Chicago", f.Form.Shipping.City)
	})
}

func TestRetreat(t *testing.T) {
	f := checkout.Restore(models.CheckoutState{Step: 3})

	f.Retreat()
	assert.Equal(t, checkout.StepPayment, f.Step)

	f.Retreat()
	f.Retreat()
	assert.Equal(t, checkout.StepShipping, f.Step)
}

func TestRestoreAndSnapshot(t *testing.T) {
	t.Run("Invalid step resets to shipping", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 7})
		assert.Equal(t, checkout.StepShipping, f.Step)
		assert.Equal(t, "US", f.Form.Shipping.Country)
	})

	t.Run("Snapshot omits payment", func(t *testing.T) {
		f := checkout.Restore(models.CheckoutState{Step: 2, Shipping: validShipping()})
		f.Form.Payment = validPayment()

		snap := f.Snapshot()
		assert.Equal(t, 2, snap.Step)
		assert.Equal(t, validShipping(), snap.Shipping)
	})
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "shipping", checkout.StepShipping.String())
	assert.Equal(t, "payment", checkout.StepPayment.String())
	assert.Equal(t, "review", checkout.StepReview.String())
	assert.Equal(t, "unknown", checkout.Step(0).String())
}
