package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationFailedError(t *testing.T) {
	err := appErrors.ValidationFailedError(1, "Please fill in all required shipping fields.", []string{"city", "state"})

	assert.Equal(t, appErrors.ErrCodeStepValidation, err.Code)
	assert.Equal(t, 1, err.Step)
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "missing: city, state", err.Detail)
}

func TestStoreErrorsPassMessageThrough(t *testing.T) {
	storeErr := stderrors.New("connection reset by peer")

	cartErr := appErrors.CartOperationFailedError(fmt.Errorf("insert line: %w", storeErr))
	assert.Equal(t, "insert line: connection reset by peer", cartErr.Detail)
	assert.ErrorIs(t, cartErr, storeErr)

	orderErr := appErrors.OrderSubmissionFailedError(storeErr)
	assert.Equal(t, appErrors.ErrCodeOrderSubmission, orderErr.Code)
	assert.Equal(t, "connection reset by peer", orderErr.Detail)
}

func TestNotAuthenticatedCarriesRedirect(t *testing.T) {
	err := appErrors.NotAuthenticatedError("/auth/login?redirect=/checkout")

	assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
	assert.Equal(t, "/auth/login?redirect=/checkout", err.Redirect)
}

func TestIsAppErrorAndHasCode(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", appErrors.EmptyCartError("/cart"))

	appErr, ok := appErrors.IsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	assert.True(t, appErrors.HasCode(wrapped, appErrors.ErrCodeEmptyCart))
	assert.False(t, appErrors.HasCode(stderrors.New("plain"), appErrors.ErrCodeEmptyCart))
}
