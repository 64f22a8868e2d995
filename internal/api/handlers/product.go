package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//	@Summary		List active products
//	@Tags			Products
//	@Produce		json
//	@Param			page	query		int											false	"Page number (default: 1)"			minimum(1)
//	@Param			size	query		int											false	"Page size (default: 20, max: 100)"	minimum(1)	maximum(100)
//	@Success		200		{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		500		{object}	response.ErrorResponse						"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, size := utils.ParsePagination(r, 20, 100)

		products, err := h.productService.ListProducts(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// GetProductBySlug godoc
//	@Summary		Get a product by slug
//	@Tags			Products
//	@Produce		json
//	@Param			slug	path		string					true	"Product slug"
//	@Success		200		{object}	models.Product			"Product"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/slug/{slug} [get]
func (h *ProductHandler) GetProductBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		slug := r.PathValue("slug")

		product, err := h.productService.GetProductBySlug(r.Context(), slug)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("slug", slug), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListCategoryProducts godoc
//	@Summary		List a category's products
//	@Description	Resolves an active category by slug and returns its active products, newest first.
//	@Tags			Products
//	@Produce		json
//	@Param			slug	path		string					true	"Category slug"
//	@Param			page	query		int						false	"Page number (default: 1)"			minimum(1)
//	@Param			size	query		int						false	"Page size (default: 20, max: 100)"	minimum(1)	maximum(100)
//	@Success		200		{object}	models.CategoryPage		"Category and products"
//	@Failure		404		{object}	response.ErrorResponse	"Category not found"
//	@Router			/categories/{slug}/products [get]
func (h *ProductHandler) ListCategoryProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		slug := r.PathValue("slug")

		page, size := utils.ParsePagination(r, 20, 100)

		result, err := h.productService.ListCategoryProducts(r.Context(), slug, page, size)
		if err != nil {
			logger.Warn("Failed to list category products", slog.String("slug", slug), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
