package models

import "github.com/google/uuid"

type ShippingDetails struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentDetails is accepted on the request that advances past the payment step
// and never stored.
type PaymentDetails struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type CheckoutForm struct {
	Shipping ShippingDetails
	Payment  PaymentDetails
}

// CheckoutState is the wizard snapshot kept between requests.
type CheckoutState struct {
	Step     int             `json:"step"`
	Shipping ShippingDetails `json:"shipping"`
}

type CheckoutView struct {
	Step     int             `json:"step"`
	StepName string          `json:"step_name"`
	Shipping ShippingDetails `json:"shipping"`
	Lines    []CartLine      `json:"lines"`
	Totals   OrderTotals     `json:"totals"`
}

type AdvanceRequest struct {
	Shipping *ShippingDetails `json:"shipping,omitempty"`
	Payment  *PaymentDetails  `json:"payment,omitempty"`
}

type OrderConfirmation struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Redirect    string    `json:"redirect"`
}

type AdvanceResponse struct {
	Checkout *CheckoutView      `json:"checkout,omitempty"`
	Order    *OrderConfirmation `json:"order,omitempty"`
}
