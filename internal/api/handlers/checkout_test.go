package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckoutHandler_GetState(t *testing.T) {
	mockCheckoutService := mocks.NewCheckoutService(t)
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

	mockCheckoutService.On("GetState", mock.Anything, testutils.GuestSession()).
		Return(&models.CheckoutView{Step: 1, StepName: "shipping", Shipping: models.ShippingDetails{Country: "US"}}, nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/checkout", nil, nil)
	w := httptest.NewRecorder()

	checkoutHandler.GetState()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.CheckoutView
	decodeResponse(t, w, &got)
	assert.Equal(t, 1, got.Step)
	assert.Equal(t, "US", got.Shipping.Country)
}

func TestCheckoutHandler_UpdateShipping(t *testing.T) {
	mockCheckoutService := mocks.NewCheckoutService(t)
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

	shipping := models.ShippingDetails{FullName: "Jane Doe", City: "Austin"}

	mockCheckoutService.On("UpdateShipping", mock.Anything, testutils.GuestSession(), mock.MatchedBy(func(s *models.ShippingDetails) bool {
		return s.FullName == "Jane Doe" && s.City == "Austin"
	})).Return(&models.CheckoutView{Step: 1, Shipping: shipping}, nil).Once()

	reqBody, _ := json.Marshal(shipping)
	req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/checkout/shipping", bytes.NewReader(reqBody), nil)
	w := httptest.NewRecorder()

	checkoutHandler.UpdateShipping()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutHandler_Advance(t *testing.T) {
	userID := uuid.New()

	t.Run("Failure - Step validation", func(t *testing.T) {
		mockCheckoutService := mocks.NewCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

		mockCheckoutService.On("Advance", mock.Anything, testutils.GuestSession(), mock.AnythingOfType("*models.AdvanceRequest")).
			Return(nil, appErrors.ValidationFailedError(1, "Please complete all required shipping fields", []string{"city"})).Once()

		reqBody := []byte(`{"shipping":{"full_name":"Jane Doe"}}`)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout/advance", bytes.NewReader(reqBody), nil)
		w := httptest.NewRecorder()

		checkoutHandler.Advance()(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		body := decodeResponse(t, w, nil)
		assert.Equal(t, appErrors.ErrCodeStepValidation, body.Error.Code)
		assert.Equal(t, 1, body.Error.Step)
		assert.Equal(t, []string{"missing: city"}, body.Error.Details)
	})

	t.Run("Success - Empty body on review submits", func(t *testing.T) {
		mockCheckoutService := mocks.NewCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		orderID := uuid.New()

		mockCheckoutService.On("Advance", mock.Anything, testutils.UserSession(userID), &models.AdvanceRequest{}).
			Return(&models.AdvanceResponse{Order: &models.OrderConfirmation{
				OrderID:     orderID,
				OrderNumber: "ORD-20261018-000001",
				Redirect:    service.SuccessRedirect + orderID.String(),
			}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/advance", nil, userID, nil)
		w := httptest.NewRecorder()

		checkoutHandler.Advance()(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.AdvanceResponse
		decodeResponse(t, w, &got)
		assert.Nil(t, got.Checkout)
		assert.Equal(t, "/checkout/success/"+orderID.String(), got.Order.Redirect)
	})

	t.Run("Failure - Guest on review", func(t *testing.T) {
		mockCheckoutService := mocks.NewCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

		mockCheckoutService.On("Advance", mock.Anything, testutils.GuestSession(), mock.Anything).
			Return(nil, appErrors.NotAuthenticatedError(service.LoginRedirect)).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout/advance", nil, nil)
		w := httptest.NewRecorder()

		checkoutHandler.Advance()(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/auth/login?redirect=/checkout", decodeResponse(t, w, nil).Error.Redirect)
	})

	t.Run("Failure - Concurrent submission", func(t *testing.T) {
		mockCheckoutService := mocks.NewCheckoutService(t)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

		mockCheckoutService.On("Advance", mock.Anything, testutils.UserSession(userID), mock.Anything).
			Return(nil, appErrors.SubmissionInProgressError()).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout/advance", nil, userID, nil)
		w := httptest.NewRecorder()

		checkoutHandler.Advance()(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCheckoutHandler_Retreat(t *testing.T) {
	mockCheckoutService := mocks.NewCheckoutService(t)
	checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

	mockCheckoutService.On("Retreat", mock.Anything, testutils.GuestSession()).
		Return(&models.CheckoutView{Step: 1, StepName: "shipping"}, nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout/retreat", nil, nil)
	w := httptest.NewRecorder()

	checkoutHandler.Retreat()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
