package service

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

const (
	LoginRedirect   = "/auth/login?redirect=/checkout"
	CartRedirect    = "/cart"
	SuccessRedirect = "/checkout/success/"
)

type CheckoutService interface {
	GetState(ctx context.Context, session models.Session) (*models.CheckoutView, error)
	UpdateShipping(ctx context.Context, session models.Session, shipping *models.ShippingDetails) (*models.CheckoutView, error)
	Advance(ctx context.Context, session models.Session, req *models.AdvanceRequest) (*models.AdvanceResponse, error)
	Retreat(ctx context.Context, session models.Session) (*models.CheckoutView, error)
}

type CheckoutDeps struct {
	Carts    repository.CartRepository
	Guests   repository.GuestCartRepository
	Sessions repository.CheckoutSessionRepository
	Orders   repository.OrderRepository
	Profiles repository.ProfileRepository
	Notifier NotificationService
	Policy   pricing.Policy
}

type checkoutService struct {
	CheckoutDeps
	sanitizer *bluemonday.Policy
}

func NewCheckoutService(deps CheckoutDeps) CheckoutService {
	return &checkoutService{CheckoutDeps: deps, sanitizer: bluemonday.StrictPolicy()}
}

// load restores the wizard for the session or starts a new one pre-filled
// from the user's profile.
func (s *checkoutService) load(ctx context.Context, session models.Session) (*checkout.Flow, error) {
	state, err := s.Sessions.Get(ctx, session.Key())
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load checkout").WithError(err)
	}

	if state != nil {
		return checkout.Restore(*state), nil
	}

	var profile *models.Profile

	if session.Authenticated() {
		profile, err = s.Profiles.GetProfileByID(ctx, session.UserID)
		if err != nil {
			logging.FromContext(ctx).Warn("Checkout prefill skipped", slog.String("error", err.Error()))

			profile = &models.Profile{Email: session.Email}
		}
	}

	return checkout.New(profile), nil
}

func (s *checkoutService) save(ctx context.Context, session models.Session, flow *checkout.Flow) error {
	if err := s.Sessions.Save(ctx, session.Key(), flow.Snapshot()); err != nil {
		return appErrors.ThirdPartyError("Failed to save checkout").WithError(err)
	}

	return nil
}

func (s *checkoutService) cart(ctx context.Context, session models.Session) (*CartManager, error) {
	m := NewCartManager(s.Carts, s.Guests, session, logging.FromContext(ctx))

	if err := m.LoadCart(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *checkoutService) view(flow *checkout.Flow, cart *CartManager) *models.CheckoutView {
	return &models.CheckoutView{
		Step:     int(flow.Step),
		StepName: flow.Step.String(),
		Shipping: flow.Form.Shipping,
		Lines:    cart.Lines(),
		Totals:   s.Policy.Compute(cart.Subtotal()),
	}
}

func (s *checkoutService) GetState(ctx context.Context, session models.Session) (*models.CheckoutView, error) {
	flow, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	cart, err := s.cart(ctx, session)
	if err != nil {
		return nil, err
	}

	return s.view(flow, cart), nil
}

// UpdateShipping stores the shipping form without validating it. An incomplete
// address entered past the first step moves the wizard back to it.
func (s *checkoutService) UpdateShipping(ctx context.Context, session models.Session, shipping *models.ShippingDetails) (*models.CheckoutView, error) {
	flow, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	flow.SetShipping(*shipping)

	if err := s.save(ctx, session, flow); err != nil {
		return nil, err
	}

	cart, err := s.cart(ctx, session)
	if err != nil {
		return nil, err
	}

	return s.view(flow, cart), nil
}

// Advance validates the current step and moves forward. On the review step it
// submits the order.
func (s *checkoutService) Advance(ctx context.Context, session models.Session, req *models.AdvanceRequest) (*models.AdvanceResponse, error) {
	flow, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	loaded := flow.Step

	if req != nil && req.Shipping != nil {
		flow.SetShipping(*req.Shipping)
	}

	// payment is validated in memory only and never saved
	if req != nil && req.Payment != nil {
		flow.Form.Payment = *req.Payment
	}

	from := flow.Step

	submit, err := flow.Advance()
	if err != nil {
		metrics.RecordCheckoutTransition(from.String(), err)

		if flow.Step != loaded {
			if saveErr := s.save(ctx, session, flow); saveErr != nil {
				return nil, saveErr
			}
		}

		return nil, err
	}

	if submit {
		return s.submit(ctx, session, flow)
	}

	if err := s.save(ctx, session, flow); err != nil {
		return nil, err
	}

	metrics.RecordCheckoutTransition(from.String(), nil)

	cart, err := s.cart(ctx, session)
	if err != nil {
		return nil, err
	}

	return &models.AdvanceResponse{Checkout: s.view(flow, cart)}, nil
}

func (s *checkoutService) Retreat(ctx context.Context, session models.Session) (*models.CheckoutView, error) {
	flow, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	flow.Retreat()

	if err := s.save(ctx, session, flow); err != nil {
		return nil, err
	}

	cart, err := s.cart(ctx, session)
	if err != nil {
		return nil, err
	}

	return s.view(flow, cart), nil
}

func (s *checkoutService) submit(ctx context.Context, session models.Session, flow *checkout.Flow) (*models.AdvanceResponse, error) {
	resp, err := s.placeOrder(ctx, session, flow)
	if err != nil {
		code := appErrors.ErrCodeInternal
		if appErr, ok := appErrors.IsAppError(err); ok {
			code = appErr.Code
		}

		metrics.RecordOrderSubmissionFailure(code)

		return nil, err
	}

	metrics.RecordOrderPlaced()

	return resp, nil
}

func (s *checkoutService) placeOrder(ctx context.Context, session models.Session, flow *checkout.Flow) (*models.AdvanceResponse, error) {
	logger := logging.FromContext(ctx)

	if !session.Authenticated() {
		return nil, appErrors.NotAuthenticatedError(LoginRedirect)
	}

	cart, err := s.cart(ctx, session)
	if err != nil {
		return nil, err
	}

	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, appErrors.EmptyCartError(CartRedirect)
	}

	// sanitizing can empty a field, so the stored address is checked again
	shipping := s.sanitizeShipping(flow.Form.Shipping)
	if missing := checkout.MissingShippingFields(shipping); len(missing) > 0 {
		flow.Step = checkout.StepShipping
		flow.Form.Shipping = shipping

		if err := s.save(ctx, session, flow); err != nil {
			return nil, err
		}

		return nil, checkout.ShippingIncompleteError(missing)
	}

	acquired, err := s.Sessions.AcquireSubmitLock(ctx, session.Key())
	if err != nil {
		return nil, appErrors.OrderSubmissionFailedError(err)
	}

	if !acquired {
		return nil, appErrors.SubmissionInProgressError()
	}

	defer func() {
		if err := s.Sessions.ReleaseSubmitLock(context.WithoutCancel(ctx), session.Key()); err != nil {
			logger.Warn("Failed to release submit lock", slog.String("error", err.Error()))
		}
	}()

	order := &models.Order{
		UserID:          session.UserID,
		Status:          models.OrderStatusPending,
		OrderTotals:     s.Policy.Compute(cart.Subtotal()),
		ShippingAddress: shipping,
		PaymentMethod:   models.PaymentMethodCard,
		PaymentStatus:   models.PaymentStatusPaid,
	}

	orderLines := snapshotLines(lines)

	orderID, orderNumber, err := s.Orders.CreateOrderTransaction(ctx, session.UserID, order, orderLines)
	if err != nil {
		logger.Error("Order creation failed", slog.String("error", err.Error()))

		return nil, appErrors.OrderSubmissionFailedError(err)
	}

	order.ID = orderID
	order.OrderNumber = orderNumber
	order.Lines = orderLines

	logger.Info("Order placed",
		slog.String("orderId", orderID.String()),
		slog.String("orderNumber", orderNumber),
		slog.String("total", order.Total.StringFixed(2)))

	// the order is committed; cleanup failures are logged only
	if err := cart.ClearCart(ctx); err != nil {
		logger.Error("Failed to clear cart after order", slog.String("error", err.Error()))
	}

	if err := s.Sessions.Delete(ctx, session.Key()); err != nil {
		logger.Error("Failed to delete checkout snapshot", slog.String("error", err.Error()))
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendOrderConfirmation(ctx, order); err != nil {
			logger.Warn("Order confirmation not sent", slog.String("error", err.Error()))
		}
	}

	return &models.AdvanceResponse{
		Order: &models.OrderConfirmation{
			OrderID:     orderID,
			OrderNumber: orderNumber,
			Redirect:    SuccessRedirect + orderID.String(),
		},
	}, nil
}

// sanitizeShipping strips markup from free-text fields. The strict policy
// escapes entities, which are decoded again since the values are stored as text.
func (s *checkoutService) sanitizeShipping(in models.ShippingDetails) models.ShippingDetails {
	clean := func(v string) string {
		return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
	}

	return models.ShippingDetails{
		FullName:   clean(in.FullName),
		Email:      clean(in.Email),
		Phone:      clean(in.Phone),
		Address1:   clean(in.Address1),
		Address2:   clean(in.Address2),
		City:       clean(in.City),
		State:      clean(in.State),
		PostalCode: clean(in.PostalCode),
		Country:    clean(in.Country),
	}
}

func snapshotLines(lines []models.CartLine) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))

	for _, line := range lines {
		sku := line.Product.SKU
		if sku == "" {
			sku = models.UnknownSKU
		}

		out = append(out, models.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			ProductSKU:  sku,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
			Subtotal:    pricing.LineTotal(line.Product.Price, line.Quantity),
		})
	}

	return out
}
