package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(userID uuid.UUID, email string, duration time.Duration, key []byte, method jwt.SigningMethod) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(key)
}

const unauthorizedBody = `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "Invalid or expired token"}}`

func TestAuthenticate(t *testing.T) {
	// Arrange
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()
	userEmail := "test@example.com"

	mockNextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "User claims should be in context")
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userEmail, claims.Email)

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	})

	token := func(d time.Duration, key []byte, method jwt.SigningMethod) string {
		tok, err := createTestToken(userID, userEmail, d, key, method)
		require.NoError(t, err)

		return "Bearer " + tok
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Valid Token",
			authHeader:     token(time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Missing Authorization Header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - No Bearer Prefix",
			authHeader:     "InvalidTokenFormat",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Malformed Token",
			authHeader:     "Bearer not.a.valid.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Wrong Signing Key",
			authHeader:     token(time.Hour, []byte("different-secret-key-0987654321"), jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
		{
			name:           "Fail - Expired Token",
			authHeader:     token(-time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorizedBody,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			// simulate the Logging middleware
			baseLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, baseLogger))

			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(mockNextHandler).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestIdentify(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userID := uuid.New()

	var (
		called    bool
		gotClaims bool
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, gotClaims = middleware.ClaimsFromContext(r.Context())

		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("Valid token attaches claims", func(t *testing.T) {
		called, gotClaims = false, false

		tok, err := createTestToken(userID, "a@b.com", time.Hour, testJwtKey, jwt.SigningMethodHS256)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)

		rr := httptest.NewRecorder()
		authMiddleware.Identify(next).ServeHTTP(rr, req)

		assert.True(t, called)
		assert.True(t, gotClaims)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("No token passes through as guest", func(t *testing.T) {
		called, gotClaims = false, false

		rr := httptest.NewRecorder()
		authMiddleware.Identify(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, called)
		assert.False(t, gotClaims)
	})

	t.Run("Invalid token passes through as guest", func(t *testing.T) {
		called, gotClaims = false, false

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rr := httptest.NewRecorder()
		authMiddleware.Identify(next).ServeHTTP(rr, req)

		assert.True(t, called)
		assert.False(t, gotClaims)
	})
}

func TestNewAuthMiddleware(t *testing.T) {
	mw := middleware.NewAuthMiddleware([]byte("some-key"))
	assert.NotNil(t, mw)
}
