package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("Valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"x","quantity":2}`))

		var dest addRequest
		require.NoError(t, utils.DecodeJSONBody(req, &dest))
		assert.Equal(t, 2, dest.Quantity)
	})

	t.Run("Empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(""))

		var dest addRequest
		err := utils.DecodeJSONBody(req, &dest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"quantity":`))

		var dest addRequest
		err := utils.DecodeJSONBody(req, &dest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON format")
	})
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	t.Run("Validation failure writes 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"not-a-uuid"}`))
		rec := httptest.NewRecorder()

		var dest addRequest
		ok := utils.ParseAndValidate(req, rec, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("Valid request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"6f1c2a43-8f1e-4b53-9a55-0a4f5f6f1b11","quantity":1}`))
		rec := httptest.NewRecorder()

		var dest addRequest
		assert.True(t, utils.ParseAndValidate(req, rec, &dest, validate))
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&size=5", 3, 5},
		{"negative page", "?page=-1&size=5", 1, 5},
		{"size clamped", "?size=500", 1, 50},
		{"garbage", "?page=abc&size=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders"+tt.query, nil)

			page, size := utils.ParsePagination(req, 10, 50)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id.String(), nil)
	req.SetPathValue("id", id.String())

	got, err := utils.ParseID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil)
	bad.SetPathValue("id", "nope")

	_, err = utils.ParseID(bad, "id")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))

	_, err = utils.ParseID(httptest.NewRequest(http.MethodGet, "/", nil), "id")
	require.Error(t, err)
}
