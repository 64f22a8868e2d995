package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// GetState godoc
//	@Summary		Current checkout step
//	@Description	Returns the wizard step, the saved shipping form, the cart lines and the order totals.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Checkout state"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout [get]
func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		view, err := h.checkoutService.GetState(r.Context(), session)
		if err != nil {
			logger.Error("Failed to load checkout", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// UpdateShipping godoc
//	@Summary		Save the shipping form
//	@Description	Stores the form as typed. Validation happens when advancing.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			shipping	body		models.ShippingDetails	true	"Shipping details"
//	@Success		200			{object}	models.CheckoutView		"Checkout state"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid request body"
//	@Router			/checkout/shipping [put]
func (h *CheckoutHandler) UpdateShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		var req models.ShippingDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid shipping input")

			return
		}

		view, err := h.checkoutService.UpdateShipping(r.Context(), session, &req)
		if err != nil {
			logger.Error("Failed to save shipping details", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Advance godoc
//	@Summary		Move to the next checkout step
//	@Description	Validates the current step. On the review step the order is submitted and the response carries the confirmation redirect.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			advance	body		models.AdvanceRequest	false	"Form fields for the current step"
//	@Success		200		{object}	models.AdvanceResponse	"Next step or placed order"
//	@Failure		400		{object}	response.ErrorResponse	"Empty cart"
//	@Failure		401		{object}	response.ErrorResponse	"Sign-in required to place the order"
//	@Failure		409		{object}	response.ErrorResponse	"Order submission already in progress"
//	@Failure		422		{object}	response.ErrorResponse	"Step validation failed"
//	@Failure		500		{object}	response.ErrorResponse	"Order submission failed"
//	@Router			/checkout/advance [post]
func (h *CheckoutHandler) Advance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		// the body is optional on the review step
		var req models.AdvanceRequest
		if r.ContentLength != 0 {
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				logger.Warn("Invalid advance input")

				return
			}
		}

		resp, err := h.checkoutService.Advance(r.Context(), session, &req)
		if err != nil {
			logger.Warn("Checkout step rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if resp.Order != nil {
			logger.Info("Checkout completed", slog.String("orderNumber", resp.Order.OrderNumber))
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Retreat godoc
//	@Summary		Go back one checkout step
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutView		"Checkout state"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout/retreat [post]
func (h *CheckoutHandler) Retreat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		view, err := h.checkoutService.Retreat(r.Context(), session)
		if err != nil {
			logger.Error("Failed to go back a step", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}
