package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartMode is either GuestMode or AuthenticatedMode.
type CartMode interface {
	Name() models.CartModeName
}

type GuestMode struct {
	Lines []models.GuestLine
}

func (GuestMode) Name() models.CartModeName { return models.CartModeGuest }

// AuthenticatedMode carries the persisted cart. CartID is nil until the first
// item is added.
type AuthenticatedMode struct {
	CartID *uuid.UUID
	Lines  []models.CartLine
}

func (AuthenticatedMode) Name() models.CartModeName { return models.CartModeAuthenticated }

// CartManager owns the cart of one session. Guest lines are kept in Redis,
// authenticated lines in Postgres. Every authenticated mutation is followed by
// a full reload of the joined lines.
type CartManager struct {
	carts   repository.CartRepository
	guests  repository.GuestCartRepository
	session models.Session
	logger  *slog.Logger

	cartID     *uuid.UUID
	lines      []models.CartLine
	guestLines []models.GuestLine
	isOpen     bool
}

func NewCartManager(carts repository.CartRepository, guests repository.GuestCartRepository, session models.Session, logger *slog.Logger) *CartManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartManager{
		carts:      carts,
		guests:     guests,
		session:    session,
		logger:     logger,
		lines:      []models.CartLine{},
		guestLines: []models.GuestLine{},
	}
}

func (m *CartManager) modeName() string {
	if m.session.Authenticated() {
		return string(models.CartModeAuthenticated)
	}

	return string(models.CartModeGuest)
}

func (m *CartManager) fail(operation string, err error) error {
	metrics.RecordCartOperation(operation, m.modeName(), err)

	if err == nil {
		return nil
	}

	m.logger.Error("Cart operation failed", slog.String("operation", operation), slog.String("error", err.Error()))

	if _, ok := appErrors.IsAppError(err); ok {
		return err
	}

	return appErrors.CartOperationFailedError(err)
}

// LoadCart re-reads the guest list and, for an authenticated session, the
// persisted cart with its product data. It is idempotent.
func (m *CartManager) LoadCart(ctx context.Context) error {
	return m.fail("load", m.load(ctx))
}

func (m *CartManager) load(ctx context.Context) error {
	guestLines, err := m.guests.GetLines(ctx, m.session.GuestID)
	if err != nil {
		return err
	}

	isOpen, err := m.guests.IsOpen(ctx, m.session.GuestID)
	if err != nil {
		return err
	}

	m.guestLines = guestLines
	m.isOpen = isOpen

	if !m.session.Authenticated() {
		return nil
	}

	return m.reload(ctx)
}

func (m *CartManager) reload(ctx context.Context) error {
	if m.cartID == nil {
		cart, err := m.carts.GetCartByUserID(ctx, m.session.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				m.lines = []models.CartLine{}

				return nil
			}

			return err
		}

		m.cartID = &cart.ID
	}

	lines, err := m.carts.ListLines(ctx, *m.cartID)
	if err != nil {
		return err
	}

	m.lines = lines

	return nil
}

// existingCart returns the user's cart id without creating one.
func (m *CartManager) existingCart(ctx context.Context) (*uuid.UUID, error) {
	if m.cartID != nil {
		return m.cartID, nil
	}

	cart, err := m.carts.GetCartByUserID(ctx, m.session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil
		}

		return nil, err
	}

	m.cartID = &cart.ID

	return m.cartID, nil
}

func (m *CartManager) ensureCart(ctx context.Context) (uuid.UUID, error) {
	cartID, err := m.existingCart(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	if cartID != nil {
		return *cartID, nil
	}

	cart, err := m.carts.CreateCart(ctx, m.session.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	m.cartID = &cart.ID

	return cart.ID, nil
}

// AddItem increments the line for productID or creates it. A quantity below 1
// adds a single unit. Inventory is not checked.
func (m *CartManager) AddItem(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if !m.session.Authenticated() {
		lines := slices.Clone(m.guestLines)

		if i := indexGuestLine(lines, productID); i >= 0 {
			lines[i].Quantity += quantity
		} else {
			lines = append(lines, models.GuestLine{ProductID: productID, Quantity: quantity})
		}

		return m.fail("add_item", m.saveGuestLines(ctx, lines))
	}

	return m.fail("add_item", m.addPersisted(ctx, productID, quantity))
}

func (m *CartManager) addPersisted(ctx context.Context, productID uuid.UUID, quantity int) error {
	cartID, err := m.ensureCart(ctx)
	if err != nil {
		return err
	}

	line, err := m.carts.GetLine(ctx, cartID, productID)

	switch {
	case err == nil:
		err = m.carts.UpdateLineQuantity(ctx, cartID, productID, line.Quantity+quantity)
	case errors.Is(err, repository.ErrLineNotFound):
		err = m.carts.InsertLine(ctx, cartID, productID, quantity)
	}

	if err != nil {
		return err
	}

	return m.reload(ctx)
}

// RemoveItem deletes the line for productID; absent lines are ignored.
func (m *CartManager) RemoveItem(ctx context.Context, productID uuid.UUID) error {
	if !m.session.Authenticated() {
		i := indexGuestLine(m.guestLines, productID)
		if i < 0 {
			return nil
		}

		lines := slices.Delete(slices.Clone(m.guestLines), i, i+1)

		return m.fail("remove_item", m.saveGuestLines(ctx, lines))
	}

	return m.fail("remove_item", m.removePersisted(ctx, productID))
}

func (m *CartManager) removePersisted(ctx context.Context, productID uuid.UUID) error {
	cartID, err := m.existingCart(ctx)
	if err != nil || cartID == nil {
		return err
	}

	if err := m.carts.DeleteLine(ctx, *cartID, productID); err != nil {
		return err
	}

	return m.reload(ctx)
}

// UpdateQuantity overwrites the quantity of an existing line. Zero or less
// removes the line.
func (m *CartManager) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return m.RemoveItem(ctx, productID)
	}

	if !m.session.Authenticated() {
		i := indexGuestLine(m.guestLines, productID)
		if i < 0 {
			return nil
		}

		lines := slices.Clone(m.guestLines)
		lines[i].Quantity = quantity

		return m.fail("update_quantity", m.saveGuestLines(ctx, lines))
	}

	return m.fail("update_quantity", m.updatePersisted(ctx, productID, quantity))
}

func (m *CartManager) updatePersisted(ctx context.Context, productID uuid.UUID, quantity int) error {
	cartID, err := m.existingCart(ctx)
	if err != nil || cartID == nil {
		return err
	}

	if err := m.carts.UpdateLineQuantity(ctx, *cartID, productID, quantity); err != nil {
		return err
	}

	return m.reload(ctx)
}

// ClearCart empties the cart. For an authenticated session the guest list is
// dropped as well since both lists count toward the cart.
func (m *CartManager) ClearCart(ctx context.Context) error {
	return m.fail("clear", m.clear(ctx))
}

func (m *CartManager) clear(ctx context.Context) error {
	if m.session.Authenticated() {
		cartID, err := m.existingCart(ctx)
		if err != nil {
			return err
		}

		if cartID != nil {
			if err := m.carts.DeleteAllLines(ctx, *cartID); err != nil {
				return err
			}
		}

		m.lines = []models.CartLine{}
	}

	if err := m.guests.Clear(ctx, m.session.GuestID); err != nil {
		return err
	}

	m.guestLines = []models.GuestLine{}

	return nil
}

// MergeGuestCart folds the guest list into the user's cart in one batch and
// clears the guest list. It does nothing for guests or an empty list.
func (m *CartManager) MergeGuestCart(ctx context.Context) error {
	if !m.session.Authenticated() {
		return nil
	}

	guestLines, err := m.guests.GetLines(ctx, m.session.GuestID)
	if err != nil {
		return m.fail("merge", err)
	}

	if len(guestLines) == 0 {
		return nil
	}

	err = m.merge(ctx, guestLines)
	metrics.RecordGuestCartMerge(err)

	return m.fail("merge", err)
}

func (m *CartManager) merge(ctx context.Context, guestLines []models.GuestLine) error {
	cartID, err := m.carts.MergeGuestLines(ctx, m.session.UserID, guestLines)
	if err != nil {
		return err
	}

	m.cartID = &cartID

	if err := m.guests.Clear(ctx, m.session.GuestID); err != nil {
		return err
	}

	m.guestLines = []models.GuestLine{}

	m.logger.Info("Guest cart merged", slog.Int("lines", len(guestLines)), slog.String("cartId", cartID.String()))

	return m.reload(ctx)
}

// ItemCount sums the quantities of both lists.
func (m *CartManager) ItemCount() int {
	count := 0

	for _, line := range m.lines {
		count += line.Quantity
	}

	for _, line := range m.guestLines {
		count += line.Quantity
	}

	return count
}

// Subtotal covers authenticated lines only; guest lines carry no price.
func (m *CartManager) Subtotal() decimal.Decimal {
	return pricing.Subtotal(m.lines)
}

// ToggleCart flips the cart panel flag.
func (m *CartManager) ToggleCart(ctx context.Context) (bool, error) {
	open := !m.isOpen

	if err := m.guests.SetOpen(ctx, m.session.GuestID, open); err != nil {
		return m.isOpen, m.fail("toggle", err)
	}

	m.isOpen = open

	return open, nil
}

func (m *CartManager) IsOpen() bool {
	return m.isOpen
}

func (m *CartManager) Lines() []models.CartLine {
	return slices.Clone(m.lines)
}

func (m *CartManager) Mode() CartMode {
	if m.session.Authenticated() {
		return AuthenticatedMode{CartID: m.cartID, Lines: slices.Clone(m.lines)}
	}

	return GuestMode{Lines: slices.Clone(m.guestLines)}
}

// View renders the manager state for API responses.
func (m *CartManager) View() *models.CartView {
	return &models.CartView{
		Mode:       m.Mode().Name(),
		CartID:     m.cartID,
		Lines:      slices.Clone(m.lines),
		GuestLines: slices.Clone(m.guestLines),
		ItemCount:  m.ItemCount(),
		Subtotal:   m.Subtotal(),
		IsOpen:     m.isOpen,
	}
}

func (m *CartManager) saveGuestLines(ctx context.Context, lines []models.GuestLine) error {
	if err := m.guests.SaveLines(ctx, m.session.GuestID, lines); err != nil {
		return err
	}

	m.guestLines = lines

	return nil
}

func indexGuestLine(lines []models.GuestLine, productID uuid.UUID) int {
	return slices.IndexFunc(lines, func(l models.GuestLine) bool {
		return l.ProductID == productID
	})
}
