package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProductService interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) (*models.PaginatedResponse, error)
	ListCategoryProducts(ctx context.Context, slug string, page, size int) (*models.CategoryPage, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	sfg   singleflight.Group
}

// NewProductService reads through the cache when one is given.
func NewProductService(repo repository.ProductRepository, c cache.Cache) ProductService {
	return &productService{repo: repo, cache: c}
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.cachedProduct(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), func() (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.cachedProduct(ctx, cache.Key(cache.ProductSlugKeyPrefix, slug), func() (*models.Product, error) {
		return s.repo.GetProductBySlug(ctx, slug)
	})
}

func (s *productService) cachedProduct(ctx context.Context, key string, lookup func() (*models.Product, error)) (*models.Product, error) {
	logger := logging.FromContext(ctx)

	// concurrent misses for the same product share one database read
	v, err, shared := s.sfg.Do(key, func() (any, error) {
		if s.cache != nil {
			var cached models.Product

			found, err := s.cache.Get(ctx, key, &cached)
			if err != nil {
				logger.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
			} else if found {
				return &cached, nil
			}
		}

		product, err := lookup()
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, product, 0); err != nil {
				logger.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}

		return product, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if shared {
		logger.Debug("Product lookup shared", slog.String("key", key))
	}

	return v.(*models.Product), nil
}

// ListCategoryProducts resolves an active category by slug and returns one
// page of its active products, newest first.
func (s *productService) ListCategoryProducts(ctx context.Context, slug string, page, size int) (*models.CategoryPage, error) {
	category, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, appErrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	products, total, err := s.repo.ListProductsByCategory(ctx, category.ID, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return &models.CategoryPage{
		Category: category,
		Products: listPage{Products: products, Total: total}.response(page, size),
	}, nil
}

// ListProducts returns one page of active products.
func (s *productService) ListProducts(ctx context.Context, page, size int) (*models.PaginatedResponse, error) {
	logger := logging.FromContext(ctx)
	key := cache.Key(cache.ProductListKeyPrefix, fmt.Sprintf("%d:%d", page, size))

	if s.cache != nil {
		var cached listPage

		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Product list cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if found {
			return cached.response(page, size), nil
		}
	}

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	result := listPage{Products: products, Total: total}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, 0); err != nil {
			logger.Warn("Product list cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return result.response(page, size), nil
}

type listPage struct {
	Products []*models.Product `json:"products"`
	Total    int               `json:"total"`
}

func (p listPage) response(page, size int) *models.PaginatedResponse {
	if p.Products == nil {
		p.Products = []*models.Product{}
	}

	return &models.PaginatedResponse{
		Data:     p.Products,
		Total:    p.Total,
		Page:     page,
		PageSize: size,
	}
}
