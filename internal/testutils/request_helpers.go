package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
)

const TestGuestID = "4f6a1c2e-7a51-4d0b-9c43-2f7b0e7c9a10"

func newRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}

// CreateTestRequestWithContext builds a request as seen after the middleware chain
// for a signed-in user that still carries the test guest session.
func CreateTestRequestWithContext(method, target string, body io.Reader, userID uuid.UUID, pathParams map[string]string) *http.Request {
	req := newRequest(method, target, body, pathParams)

	claims := &models.Claims{UserID: userID, Email: "test@example.com"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)
	ctx = middleware.WithGuestID(ctx, TestGuestID)

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutContext builds an anonymous guest request.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := newRequest(method, target, body, pathParams)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)
	ctx = middleware.WithGuestID(ctx, TestGuestID)

	return req.WithContext(ctx)
}

func GuestSession() models.Session {
	return models.Session{GuestID: TestGuestID}
}

func UserSession(userID uuid.UUID) models.Session {
	return models.Session{GuestID: TestGuestID, UserID: userID, Email: "test@example.com"}
}
