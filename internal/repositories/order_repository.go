package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// NewOrderNumber formats ORD-YYYYMMDD-XXXXXXXX with an uppercase random suffix.
var NewOrderNumber = func(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}

type OrderRepository interface {
	CreateOrderTransaction(ctx context.Context, userID uuid.UUID, order *models.Order, lines []models.OrderLine) (uuid.UUID, string, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, order_number, status, subtotal, tax, shipping, discount, total,
	shipping_name, shipping_email, COALESCE(shipping_phone, ''), shipping_address_line1,
	COALESCE(shipping_address_line2, ''), shipping_city, shipping_state, shipping_postal_code,
	shipping_country, payment_method, payment_status, COALESCE(notes, ''), created_at, updated_at`

// CreateOrderTransaction writes the order header and its lines atomically and
// returns the generated id and order number. Each line takes its quantity off
// the product's inventory; an inactive product or short stock rolls the whole
// order back with ErrInsufficientStock.
func (r *orderRepository) CreateOrderTransaction(ctx context.Context, userID uuid.UUID, order *models.Order, lines []models.OrderLine) (uuid.UUID, string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (user_id, order_number, status, subtotal, tax, shipping, discount, total,
			shipping_name, shipping_email, shipping_phone, shipping_address_line1, shipping_address_line2,
			shipping_city, shipping_state, shipping_postal_code, shipping_country,
			payment_method, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
		RETURNING id, order_number
	`

	addr := order.ShippingAddress

	var (
		orderID     uuid.UUID
		orderNumber string
	)

	err = tx.QueryRowContext(dbCtx, orderQuery,
		userID, NewOrderNumber(time.Now()), order.Status,
		order.Subtotal, order.Tax, order.Shipping, order.Discount, order.Total,
		addr.FullName, addr.Email, nullString(addr.Phone), addr.Address1, nullString(addr.Address2),
		addr.City, addr.State, addr.PostalCode, addr.Country,
		order.PaymentMethod, order.PaymentStatus, nullString(order.Notes),
	).Scan(&orderID, &orderNumber)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to insert order: %w", err)
	}

	stockQuery := `
		UPDATE products
		SET inventory_quantity = inventory_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND is_active AND inventory_quantity >= $2
	`

	lineQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, product_sku, price, quantity, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	for _, line := range lines {
		result, err := tx.ExecContext(dbCtx, stockQuery, line.ProductID, line.Quantity)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("failed to reserve stock: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("failed to reserve stock: %w", err)
		}

		if affected == 0 {
			return uuid.Nil, "", fmt.Errorf("%w for %q (%s)", ErrInsufficientStock, line.ProductName, line.ProductID)
		}

		_, err = tx.ExecContext(dbCtx, lineQuery, orderID, line.ProductID, line.ProductName, line.ProductSKU, line.Price, line.Quantity, line.Subtotal)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to commit order: %w", err)
	}

	return orderID, orderNumber, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	linesByOrder, err := r.linesFor(dbCtx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	if lines, ok := linesByOrder[order.ID]; ok {
		order.Lines = lines
	}

	return order, nil
}

// ListOrdersByUser pages through a user's orders, newest first.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []uuid.UUID{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	linesByOrder, err := r.linesFor(dbCtx, ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if lines, ok := linesByOrder[orders[i].ID]; ok {
			orders[i].Lines = lines
		}
	}

	return orders, total, nil
}

func (r *orderRepository) linesFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_sku, price, quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at ASC, id ASC
	`

	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order lines: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.OrderLine, len(orderIDs))

	for rows.Next() {
		var line models.OrderLine

		err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.ProductSKU, &line.Price, &line.Quantity, &line.Subtotal, &line.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		out[line.OrderID] = append(out[line.OrderID], line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	addr := &order.ShippingAddress

	err := row.Scan(&order.ID, &order.UserID, &order.OrderNumber, &order.Status,
		&order.Subtotal, &order.Tax, &order.Shipping, &order.Discount, &order.Total,
		&addr.FullName, &addr.Email, &addr.Phone, &addr.Address1, &addr.Address2,
		&addr.City, &addr.State, &addr.PostalCode, &addr.Country,
		&order.PaymentMethod, &order.PaymentStatus, &order.Notes, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	order.Lines = []models.OrderLine{}

	return order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
