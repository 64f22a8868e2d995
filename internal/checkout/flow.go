// Package checkout implements the three step checkout wizard. It holds no I/O;
// callers persist the state between requests and perform the order submission
// when Advance reports it.
package checkout

import (
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

const DefaultCountry = "US"

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

func (s Step) Valid() bool {
	return s >= StepShipping && s <= StepReview
}

type Flow struct {
	Step Step
	Form models.CheckoutForm
}

// New starts a wizard on the shipping step, pre-filling from the profile when given.
func New(profile *models.Profile) *Flow {
	f := &Flow{Step: StepShipping}
	f.Form.Shipping.Country = DefaultCountry

	if profile != nil {
		f.Form.Shipping.Email = profile.Email
		f.Form.Shipping.FullName = profile.FullName
		f.Form.Shipping.Phone = profile.Phone
	}

	return f
}

// Restore rebuilds a wizard from a stored snapshot. Payment fields start blank.
func Restore(state models.CheckoutState) *Flow {
	step := Step(state.Step)
	if !step.Valid() {
		step = StepShipping
	}

	f := &Flow{Step: step}
	f.Form.Shipping = state.Shipping

	if strings.TrimSpace(f.Form.Shipping.Country) == "" {
		f.Form.Shipping.Country = DefaultCountry
	}

	return f
}

// Snapshot returns the persistable part of the wizard.
func (f *Flow) Snapshot() models.CheckoutState {
	return models.CheckoutState{Step: int(f.Step), Shipping: f.Form.Shipping}
}

// SetShipping replaces the shipping form. A blank country falls back to the
// default. Past the first step an incomplete address sends the wizard back to it.
func (f *Flow) SetShipping(s models.ShippingDetails) {
	if strings.TrimSpace(s.Country) == "" {
		s.Country = DefaultCountry
	}

	f.Form.Shipping = s

	if f.Step > StepShipping && len(MissingShippingFields(s)) > 0 {
		f.Step = StepShipping
	}
}

// Advance validates the current step and moves forward. On the review step it
// returns submit=true and leaves the step unchanged. Later steps re-check the
// shipping address and fall back to the first step when it is incomplete.
func (f *Flow) Advance() (bool, error) {
	if err := f.checkShipping(); err != nil {
		return false, err
	}

	switch f.Step {
	case StepShipping:
		f.Step = StepPayment

		return false, nil
	case StepPayment:
		if missing := MissingPaymentFields(f.Form.Payment); len(missing) > 0 {
			return false, appErrors.ValidationFailedError(int(StepPayment), "Please fill in all payment fields.", missing)
		}

		f.Step = StepReview

		return false, nil
	default:
		return true, nil
	}
}

func (f *Flow) checkShipping() error {
	missing := MissingShippingFields(f.Form.Shipping)
	if len(missing) == 0 {
		return nil
	}

	f.Step = StepShipping

	return ShippingIncompleteError(missing)
}

func ShippingIncompleteError(missing []string) *appErrors.AppError {
	return appErrors.ValidationFailedError(int(StepShipping), "Please fill in all required shipping fields.", missing)
}

// Retreat moves back one step; it is a no-op on the first step.
func (f *Flow) Retreat() {
	if f.Step > StepShipping {
		f.Step--
	}
}

func MissingShippingFields(s models.ShippingDetails) []string {
	return missing(
		field{"full_name", s.FullName},
		field{"email", s.Email},
		field{"address1", s.Address1},
		field{"city", s.City},
		field{"state", s.State},
		field{"postal_code", s.PostalCode},
		field{"country", s.Country},
	)
}

// MissingPaymentFields checks presence only. Card name is optional.
func MissingPaymentFields(p models.PaymentDetails) []string {
	return missing(
		field{"card_number", p.CardNumber},
		field{"expiry", p.Expiry},
		field{"cvv", p.CVV},
	)
}

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var out []string

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, f.name)
		}
	}

	return out
}
