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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the cart for the caller. Guests get their session cart, signed-in users their stored cart.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Current cart"
//	@Failure		500	{object}	response.ErrorResponse	"Cart operation failed"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.GetCart(r.Context(), session)
		if err != nil {
			logger.Error("Failed to load cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds the product or increases the quantity of an existing line. A quantity below 1 is treated as 1.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.CartView			"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid request"
//	@Failure		500		{object}	response.ErrorResponse	"Cart operation failed"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), session, &req)
		if err != nil {
			logger.Error("Failed to add item",
				slog.String("productId", req.ProductID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Description	A quantity of zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		string							true	"Product ID (UUID)"	Format(uuid)
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartView					"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid request"
//	@Failure		500			{object}	response.ErrorResponse			"Cart operation failed"
//	@Router			/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")

			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), session, productID, req.Quantity)
		if err != nil {
			logger.Error("Failed to update quantity",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a product from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200			{object}	models.CartView			"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid product id"
//	@Failure		500			{object}	response.ErrorResponse	"Cart operation failed"
//	@Router			/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), session, productID)
		if err != nil {
			logger.Error("Failed to remove item",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Empty cart"
//	@Failure		500	{object}	response.ErrorResponse	"Cart operation failed"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.ClearCart(r.Context(), session)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// ToggleCart godoc
//	@Summary		Open or close the cart panel
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.ToggleCartResponse	"New panel state"
//	@Failure		500	{object}	response.ErrorResponse		"Cart operation failed"
//	@Router			/cart/toggle [post]
func (h *CartHandler) ToggleCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		resp, err := h.cartService.ToggleCart(r.Context(), session)
		if err != nil {
			logger.Error("Failed to toggle cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// MergeGuestCart godoc
//	@Summary		Merge the guest cart into the user's cart
//	@Description	Adds guest quantities onto matching lines and clears the guest cart. Requires authentication.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Merged cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Cart operation failed"
//	@Security		BearerAuth
//	@Router			/cart/merge [post]
func (h *CartHandler) MergeGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.MergeGuestCart(r.Context(), session)
		if err != nil {
			logger.Error("Failed to merge guest cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Guest cart merged", slog.Int("itemCount", cart.ItemCount))
		response.Success(w, http.StatusOK, cart)
	}
}

// Summary godoc
//	@Summary		Cart pricing summary
//	@Description	Subtotal, shipping, tax and the amount left before free shipping.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartSummary		"Cart summary"
//	@Failure		500	{object}	response.ErrorResponse	"Cart operation failed"
//	@Router			/cart/summary [get]
func (h *CartHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		session := middleware.SessionFromContext(r.Context())

		summary, err := h.cartService.Summary(r.Context(), session)
		if err != nil {
			logger.Error("Failed to build cart summary", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
