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
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("cart line not found")
)

// productImagesJSON aggregates a product's images ordered for display.
const productImagesJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'id', pi.id,
			'product_id', pi.product_id,
			'image_url', pi.image_url,
			'alt_text', COALESCE(pi.alt_text, ''),
			'display_order', pi.display_order,
			'is_primary', pi.is_primary
		) ORDER BY pi.display_order)
		FROM product_images pi
		WHERE pi.product_id = p.id
	), '[]')`

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetLine(ctx context.Context, cartID, productID uuid.UUID) (*models.CartLine, error)
	InsertLine(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	UpdateLineQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteAllLines(ctx context.Context, cartID uuid.UUID) error
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
	MergeGuestLines(ctx context.Context, userID uuid.UUID, lines []models.GuestLine) (uuid.UUID, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return cart, nil
}

// CreateCart returns the existing cart when one was created concurrently.
func (r *cartRepository) CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, user_id, created_at, updated_at
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetLine(ctx context.Context, cartID, productID uuid.UUID) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	line := &models.CartLine{}

	err := r.DB.QueryRowContext(dbCtx, query, cartID, productID).Scan(&line.ID, &line.CartID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLineNotFound
		}

		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}

	return line, nil
}

func (r *cartRepository) InsertLine(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, productID, quantity); err != nil {
		return fmt.Errorf("failed to insert cart line: %w", err)
	}

	return nil
}

// UpdateLineQuantity overwrites the quantity. A missing line is not an error.
func (r *cartRepository) UpdateLineQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE cart_id = $2 AND product_id = $3
	`

	if _, err := r.DB.ExecContext(dbCtx, query, quantity, cartID, productID); err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, cartID, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, productID); err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteAllLines(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// ListLines returns the cart lines joined with their product, oldest first.
func (r *cartRepository) ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.id, p.name, p.slug, COALESCE(p.sku, ''), p.price,
			` + productImagesJSON + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC, ci.id ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		var (
			line       models.CartLine
			imagesJSON []byte
		)

		err := rows.Scan(&line.ID, &line.CartID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt,
			&line.Product.ID, &line.Product.Name, &line.Product.Slug, &line.Product.SKU, &line.Product.Price, &imagesJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		if err := json.Unmarshal(imagesJSON, &line.Product.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

// MergeGuestLines folds guest lines into the user's cart in one transaction,
// creating the cart if needed. Existing lines are incremented. Lines naming an
// unknown or inactive product are dropped.
func (r *cartRepository) MergeGuestLines(ctx context.Context, userID uuid.UUID, lines []models.GuestLine) (uuid.UUID, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	defer tx.Rollback()

	cartQuery := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`

	var cartID uuid.UUID
	if err := tx.QueryRowContext(dbCtx, cartQuery, userID).Scan(&cartID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to locate cart for merge: %w", err)
	}

	lineQuery := `
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at, updated_at)
		SELECT $1::uuid, p.id, $3::int, NOW(), NOW()
		FROM products p
		WHERE p.id = $2 AND p.is_active
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}

		if _, err := tx.ExecContext(dbCtx, lineQuery, cartID, line.ProductID, line.Quantity); err != nil {
			return uuid.Nil, fmt.Errorf("failed to merge guest line %s: %w", line.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit merge: %w", err)
	}

	return cartID, nil
}
