package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Products are read-only here; the catalogue is managed elsewhere.
type ProductRepository interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.name, p.slug, COALESCE(p.description, ''), COALESCE(p.sku, ''), p.price,
	p.inventory_quantity, p.is_active, p.category_id, p.created_at, p.updated_at, ` + productImagesJSON

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.getProduct(ctx, `p.id = $1`, id)
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.getProduct(ctx, `p.slug = $1`, slug)
}

func (r *productRepository) getProduct(ctx context.Context, where string, arg any) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products p WHERE ` + where + ` AND p.is_active`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// ListProducts pages through active products, newest first.
func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE is_active`
	if err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + productColumns + `
		FROM products p
		WHERE p.is_active
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`

	products, err := r.queryProducts(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, slug, COALESCE(description, ''), parent_id, COALESCE(image_url, ''),
			display_order, is_active, created_at, updated_at
		FROM categories
		WHERE slug = $1 AND is_active
	`

	category := &models.Category{}

	var parentID uuid.NullUUID

	err := r.DB.QueryRowContext(dbCtx, query, slug).Scan(&category.ID, &category.Name, &category.Slug, &category.Description,
		&parentID, &category.ImageURL, &category.DisplayOrder, &category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}

		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if parentID.Valid {
		category.ParentID = &parentID.UUID
	}

	return category, nil
}

// ListProductsByCategory pages through a category's active products, newest first.
func (r *productRepository) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count category products: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + productColumns + `
		FROM products p
		WHERE p.category_id = $1 AND p.is_active
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3
	`

	products, err := r.queryProducts(dbCtx, query, categoryID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		categoryID uuid.NullUUID
		imagesJSON []byte
	)

	err := row.Scan(&product.ID, &product.Name, &product.Slug, &product.Description, &product.SKU, &product.Price,
		&product.InventoryQuantity, &product.IsActive, &categoryID, &product.CreatedAt, &product.UpdatedAt, &imagesJSON)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
	}

	return product, nil
}
