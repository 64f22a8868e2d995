package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/sony/gobreaker/v2"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	breaker      *gobreaker.CircuitBreaker[struct{}]
}

// BreakerSettings trips after three consecutive send failures and probes again
// after thirty seconds.
func BreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
}

// NewNotificationService returns a notifier that records every attempt. A nil
// emailService disables delivery.
func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{
		repo:         repo,
		emailService: emailService,
		breaker:      gobreaker.NewCircuitBreaker[struct{}](BreakerSettings("sendgrid")),
	}
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	logger := logging.FromContext(ctx)

	if n.emailService == nil {
		logger.Debug("Email delivery disabled, skipping order confirmation", slog.String("orderId", order.ID.String()))

		return nil
	}

	req, err := OrderConfirmationEmail(order)
	if err != nil {
		return appErrors.InternalError("Failed to render order confirmation").WithError(err)
	}

	notification := &models.Notification{
		OrderID:   order.ID,
		Recipient: req.To,
		Subject:   req.Subject,
		Status:    models.NotificationStatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return appErrors.DatabaseError("Failed to record notification").WithError(err)
	}

	_, sendErr := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.emailService.Send(ctx, req)
	})

	if sendErr != nil {
		logger.Warn("Order confirmation email failed",
			slog.String("orderId", order.ID.String()),
			slog.String("error", sendErr.Error()))

		if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, sendErr.Error()); err != nil {
			logger.Error("Failed to update notification status", slog.String("error", err.Error()))
		}

		return appErrors.NewAppError(appErrors.ErrCodeNotificationFailed, "Failed to send order confirmation", http.StatusBadGateway).WithError(sendErr)
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		return appErrors.DatabaseError("Email sent but failed to update notification status").WithError(err)
	}

	logger.Info("Order confirmation sent", slog.String("orderId", order.ID.String()), slog.String("recipient", req.To))

	return nil
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<h2>Thank you for your order, {{.ShippingAddress.FullName}}!</h2>
<p>Order <strong>{{.OrderNumber}}</strong></p>
<table>
{{range .Lines}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>${{.Subtotal.StringFixed 2}}</td></tr>
{{end}}</table>
<p>Subtotal: ${{.Subtotal.StringFixed 2}}<br>Shipping: ${{.Shipping.StringFixed 2}}<br>Tax: ${{.Tax.StringFixed 2}}<br><strong>Total: ${{.Total.StringFixed 2}}</strong></p>`))

// OrderConfirmationEmail renders the confirmation sent to the shipping email.
func OrderConfirmationEmail(order *models.Order) (*models.EmailNotificationRequest, error) {
	var text strings.Builder

	fmt.Fprintf(&text, "Thank you for your order, %s!\n\nOrder %s\n\n", order.ShippingAddress.FullName, order.OrderNumber)

	for _, line := range order.Lines {
		fmt.Fprintf(&text, "%d x %s  $%s\n", line.Quantity, line.ProductName, line.Subtotal.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nSubtotal: $%s\nShipping: $%s\nTax: $%s\nTotal: $%s\n",
		order.Subtotal.StringFixed(2), order.Shipping.StringFixed(2), order.Tax.StringFixed(2), order.Total.StringFixed(2))

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, order); err != nil {
		return nil, err
	}

	return &models.EmailNotificationRequest{
		To:          order.ShippingAddress.Email,
		Subject:     "Your order " + order.OrderNumber,
		Content:     text.String(),
		HTMLContent: html.String(),
	}, nil
}
