package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memCartRepo is an in-memory CartRepository backed by a fixed catalog.
type memCartRepo struct {
	mu      sync.Mutex
	catalog map[uuid.UUID]models.CartProduct
	carts   map[uuid.UUID]*models.Cart // by user
	lines   map[uuid.UUID][]models.CartLine
	fail    error
}

func newMemCartRepo(products ...models.CartProduct) *memCartRepo {
	r := &memCartRepo{
		catalog: map[uuid.UUID]models.CartProduct{},
		carts:   map[uuid.UUID]*models.Cart{},
		lines:   map[uuid.UUID][]models.CartLine{},
	}

	for _, p := range products {
		r.catalog[p.ID] = p
	}

	return r
}

func product(name string, price string, sku string) models.CartProduct {
	return models.CartProduct{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), SKU: sku}
}

func (r *memCartRepo) GetCartByUserID(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return nil, r.fail
	}

	cart, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	return cart, nil
}

func (r *memCartRepo) CreateCart(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.createLocked(userID), nil
}

func (r *memCartRepo) createLocked(userID uuid.UUID) *models.Cart {
	if cart, ok := r.carts[userID]; ok {
		return cart
	}

	cart := &models.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.carts[userID] = cart

	return cart
}

func (r *memCartRepo) GetLine(_ context.Context, cartID, productID uuid.UUID) (*models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.lines[cartID] {
		if l.ProductID == productID {
			return &l, nil
		}
	}

	return nil, repository.ErrLineNotFound
}

func (r *memCartRepo) InsertLine(_ context.Context, cartID, productID uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}

	r.lines[cartID] = append(r.lines[cartID], models.CartLine{
		ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: quantity,
	})

	return nil
}

func (r *memCartRepo) UpdateLineQuantity(_ context.Context, cartID, productID uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.lines[cartID] {
		if r.lines[cartID][i].ProductID == productID {
			r.lines[cartID][i].Quantity = quantity
		}
	}

	return nil
}

func (r *memCartRepo) DeleteLine(_ context.Context, cartID, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[cartID] = slices.DeleteFunc(r.lines[cartID], func(l models.CartLine) bool {
		return l.ProductID == productID
	})

	return nil
}

func (r *memCartRepo) DeleteAllLines(_ context.Context, cartID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, cartID)

	return nil
}

func (r *memCartRepo) ListLines(_ context.Context, cartID uuid.UUID) ([]models.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.CartLine{}

	for _, l := range r.lines[cartID] {
		l.Product = r.catalog[l.ProductID]
		out = append(out, l)
	}

	return out, nil
}

func (r *memCartRepo) MergeGuestLines(_ context.Context, userID uuid.UUID, lines []models.GuestLine) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return uuid.Nil, r.fail
	}

	cart := r.createLocked(userID)

	for _, gl := range lines {
		if _, ok := r.catalog[gl.ProductID]; !ok || gl.Quantity < 1 {
			continue
		}

		i := slices.IndexFunc(r.lines[cart.ID], func(l models.CartLine) bool { return l.ProductID == gl.ProductID })
		if i >= 0 {
			r.lines[cart.ID][i].Quantity += gl.Quantity

			continue
		}

		r.lines[cart.ID] = append(r.lines[cart.ID], models.CartLine{
			ID: uuid.New(), CartID: cart.ID, ProductID: gl.ProductID, Quantity: gl.Quantity,
		})
	}

	return cart.ID, nil
}

// memGuestRepo is an in-memory GuestCartRepository.
type memGuestRepo struct {
	mu    sync.Mutex
	lines map[string][]models.GuestLine
	open  map[string]bool
	fail  error
}

func newMemGuestRepo() *memGuestRepo {
	return &memGuestRepo{lines: map[string][]models.GuestLine{}, open: map[string]bool{}}
}

func (r *memGuestRepo) GetLines(_ context.Context, guestID string) ([]models.GuestLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return nil, r.fail
	}

	return append([]models.GuestLine{}, r.lines[guestID]...), nil
}

func (r *memGuestRepo) SaveLines(_ context.Context, guestID string, lines []models.GuestLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}

	if len(lines) == 0 {
		delete(r.lines, guestID)

		return nil
	}

	r.lines[guestID] = append([]models.GuestLine{}, lines...)

	return nil
}

func (r *memGuestRepo) Clear(_ context.Context, guestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, guestID)

	return nil
}

func (r *memGuestRepo) IsOpen(_ context.Context, guestID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.open[guestID], nil
}

func (r *memGuestRepo) SetOpen(_ context.Context, guestID string, open bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.open[guestID] = open

	return nil
}

var (
	_ repository.CartRepository      = (*memCartRepo)(nil)
	_ repository.GuestCartRepository = (*memGuestRepo)(nil)
)
