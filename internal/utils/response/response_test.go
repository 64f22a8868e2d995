package response_test

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	response.Success(rec, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestError(t *testing.T) {
	t.Run("AppError with step", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.Error(rec, appErrors.ValidationFailedError(2, "Please fill in all payment fields.", []string{"cvv"}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decode(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeStepValidation, resp.Error.Code)
		assert.Equal(t, 2, resp.Error.Step)
		assert.Equal(t, []string{"missing: cvv"}, resp.Error.Details)
	})

	t.Run("AppError with redirect", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.Error(rec, appErrors.NotAuthenticatedError("/auth/login?redirect=/checkout"))

		resp := decode(t, rec)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/auth/login?redirect=/checkout", resp.Error.Redirect)
	})

	t.Run("Plain error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.Error(rec, stderrors.New("boom"))

		resp := decode(t, rec)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, appErrors.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "boom")
	})
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Quantity int    `validate:"gte=1"`
	}

	err := validator.New().Struct(payload{Email: "nope"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	rec := httptest.NewRecorder()
	response.ValidationError(rec, verrs)

	resp := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
}
