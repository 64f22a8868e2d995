package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrders(t *testing.T) {
	mockRepo := mocks.NewOrderRepository(t)
	orderService := service.NewOrderService(mockRepo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		orders := []models.Order{{ID: uuid.New(), UserID: userID, OrderNumber: "ORD-1"}}
		mockRepo.On("ListOrdersByUser", ctx, userID, 1, 10).Return(orders, 1, nil).Once()

		resp, err := orderService.ListOrders(ctx, userID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, orders, resp.Orders)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 10, resp.Size)
	})

	t.Run("Database Error", func(t *testing.T) {
		dbErr := errors.New("timeout")
		mockRepo.On("ListOrdersByUser", ctx, userID, 2, 10).Return(nil, 0, dbErr).Once()

		resp, err := orderService.ListOrders(ctx, userID, 2, 10)
		assert.Nil(t, resp)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeDatabaseError))
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestGetOrder(t *testing.T) {
	mockRepo := mocks.NewOrderRepository(t)
	orderService := service.NewOrderService(mockRepo)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Owner can read", func(t *testing.T) {
		mockRepo.On("GetOrderByID", ctx, orderID).Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		order, err := orderService.GetOrder(ctx, userID, orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("Other user is forbidden", func(t *testing.T) {
		mockRepo.On("GetOrderByID", ctx, orderID).Return(&models.Order{ID: orderID, UserID: uuid.New()}, nil).Once()

		order, err := orderService.GetOrder(ctx, userID, orderID)
		assert.Nil(t, order)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeForbidden))
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo.On("GetOrderByID", ctx, orderID).Return(nil, fmt.Errorf("lookup: %w", repository.ErrOrderNotFound)).Once()

		_, err := orderService.GetOrder(ctx, userID, orderID)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}
