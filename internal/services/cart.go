package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, session models.Session) (*models.CartView, error)
	AddItem(ctx context.Context, session models.Session, req *models.AddItemRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, session models.Session, productID uuid.UUID) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, session models.Session, productID uuid.UUID, quantity int) (*models.CartView, error)
	ClearCart(ctx context.Context, session models.Session) (*models.CartView, error)
	ToggleCart(ctx context.Context, session models.Session) (*models.ToggleCartResponse, error)
	MergeGuestCart(ctx context.Context, session models.Session) (*models.CartView, error)
	Summary(ctx context.Context, session models.Session) (*models.CartSummary, error)
}

type cartService struct {
	carts  repository.CartRepository
	guests repository.GuestCartRepository
	policy pricing.Policy
}

func NewCartService(carts repository.CartRepository, guests repository.GuestCartRepository, policy pricing.Policy) CartService {
	return &cartService{carts: carts, guests: guests, policy: policy}
}

// manager builds a CartManager for the session and loads its current state.
func (s *cartService) manager(ctx context.Context, session models.Session) (*CartManager, error) {
	m := NewCartManager(s.carts, s.guests, session, logging.FromContext(ctx))

	if err := m.LoadCart(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *cartService) apply(ctx context.Context, session models.Session, op func(m *CartManager) error) (*models.CartView, error) {
	m, err := s.manager(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := op(m); err != nil {
		return nil, err
	}

	return m.View(), nil
}

func (s *cartService) GetCart(ctx context.Context, session models.Session) (*models.CartView, error) {
	return s.apply(ctx, session, func(*CartManager) error { return nil })
}

func (s *cartService) AddItem(ctx context.Context, session models.Session, req *models.AddItemRequest) (*models.CartView, error) {
	return s.apply(ctx, session, func(m *CartManager) error {
		return m.AddItem(ctx, req.ProductID, req.Quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, session models.Session, productID uuid.UUID) (*models.CartView, error) {
	return s.apply(ctx, session, func(m *CartManager) error {
		return m.RemoveItem(ctx, productID)
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, session models.Session, productID uuid.UUID, quantity int) (*models.CartView, error) {
	return s.apply(ctx, session, func(m *CartManager) error {
		return m.UpdateQuantity(ctx, productID, quantity)
	})
}

func (s *cartService) ClearCart(ctx context.Context, session models.Session) (*models.CartView, error) {
	return s.apply(ctx, session, func(m *CartManager) error {
		return m.ClearCart(ctx)
	})
}

func (s *cartService) MergeGuestCart(ctx context.Context, session models.Session) (*models.CartView, error) {
	return s.apply(ctx, session, func(m *CartManager) error {
		return m.MergeGuestCart(ctx)
	})
}

func (s *cartService) ToggleCart(ctx context.Context, session models.Session) (*models.ToggleCartResponse, error) {
	m := NewCartManager(s.carts, s.guests, session, logging.FromContext(ctx))

	// only the panel flag is needed
	isOpen, err := s.guests.IsOpen(ctx, session.GuestID)
	if err != nil {
		return nil, m.fail("toggle", err)
	}

	m.isOpen = isOpen

	open, err := m.ToggleCart(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ToggleCartResponse{IsOpen: open}, nil
}

// Summary is the pricing estimate shown in the cart panel.
func (s *cartService) Summary(ctx context.Context, session models.Session) (*models.CartSummary, error) {
	m, err := s.manager(ctx, session)
	if err != nil {
		return nil, err
	}

	summary := s.policy.Summary(m.Lines(), m.ItemCount())

	return &summary, nil
}
