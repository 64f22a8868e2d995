package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/google/uuid"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubEmailService struct {
	err  error
	sent []*models.EmailNotificationRequest
}

func (s *stubEmailService) Send(_ context.Context, req *models.EmailNotificationRequest) error {
	s.sent = append(s.sent, req)

	return s.err
}

func (s *stubEmailService) GetSendGridClient() *sg.Client {
	return nil
}

func testOrder() *models.Order {
	return &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20250101-ABCDEF12",
		OrderTotals: models.OrderTotals{
			Subtotal: decimal.NewFromInt(20),
			Shipping: decimal.NewFromInt(10),
			Tax:      decimal.RequireFromString("1.60"),
			Total:    decimal.RequireFromString("31.60"),
		},
		ShippingAddress: models.ShippingDetails{FullName: "Jane <Doe>", Email: "jane@example.com"},
		Lines: []models.OrderLine{
			{ProductName: "Mug", Quantity: 2, Subtotal: decimal.NewFromInt(20)},
		},
	}
}

func TestOrderConfirmationEmail(t *testing.T) {
	req, err := service.OrderConfirmationEmail(testOrder())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", req.To)
	assert.Equal(t, "Your order ORD-20250101-ABCDEF12", req.Subject)
	assert.Contains(t, req.Content, "2 x Mug  $20.00")
	assert.Contains(t, req.Content, "Total: $31.60")
	assert.Contains(t, req.HTMLContent, "Jane &lt;Doe&gt;")
}

func TestSendOrderConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := mocks.NewNotificationRepository(t)
		email := &stubEmailService{}
		notifier := service.NewNotificationService(repo, email)
		order := testOrder()
		notificationID := uuid.New()

		repo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.OrderID == order.ID && n.Status == models.NotificationStatusPending
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Notification).ID = notificationID
		}).Return(nil).Once()
		repo.On("UpdateNotificationStatus", ctx, notificationID, models.NotificationStatusSent, "").Return(nil).Once()

		require.NoError(t, notifier.SendOrderConfirmation(ctx, order))
		assert.Len(t, email.sent, 1)
	})

	t.Run("Send failure is recorded", func(t *testing.T) {
		repo := mocks.NewNotificationRepository(t)
		email := &stubEmailService{err: errors.New("failed to send email, status code: 500")}
		notifier := service.NewNotificationService(repo, email)

		repo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.Anything, models.NotificationStatusFailed,
			mock.MatchedBy(func(msg string) bool { return strings.Contains(msg, "500") })).Return(nil).Once()

		err := notifier.SendOrderConfirmation(ctx, testOrder())
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotificationFailed))
	})

	t.Run("Breaker opens after repeated failures", func(t *testing.T) {
		repo := mocks.NewNotificationRepository(t)
		email := &stubEmailService{err: errors.New("timeout")}
		notifier := service.NewNotificationService(repo, email)

		repo.On("CreateNotification", ctx, mock.Anything).Return(nil)
		repo.On("UpdateNotificationStatus", ctx, mock.Anything, models.NotificationStatusFailed, mock.Anything).Return(nil)

		for range 5 {
			_ = notifier.SendOrderConfirmation(ctx, testOrder())
		}

		// the last two attempts were short-circuited
		assert.Len(t, email.sent, 3)
	})

	t.Run("Disabled delivery", func(t *testing.T) {
		repo := mocks.NewNotificationRepository(t)
		notifier := service.NewNotificationService(repo, nil)

		require.NoError(t, notifier.SendOrderConfirmation(ctx, testOrder()))
	})
}
