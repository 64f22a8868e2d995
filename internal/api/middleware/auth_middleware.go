package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserContextKey = contextKey("user")

var (
	errMissingToken  = errors.New("authorization header is required")
	errInvalidFormat = errors.New("invalid authorization format")
	errSigningMethod = errors.New("unexpected signing method")
	errInvalidToken  = errors.New("invalid token")
)

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		claims, err := m.parse(r)
		if err != nil {
			logger.Warn("Authentication failed", slog.String("error", err.Error()))
			response.Error(w, appErrors.UnauthorizedError("Invalid or expired token"))

			return
		}

		next.ServeHTTP(w, r.WithContext(m.withClaims(r.Context(), logger, claims)))
	}
}

// Identify attaches claims when a valid token is present and otherwise lets the
// request through as a guest.
func (m *AuthMiddleware) Identify(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		claims, err := m.parse(r)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				logger.Warn("Ignoring invalid token", slog.String("error", err.Error()))
			}

			next.ServeHTTP(w, r)

			return
		}

		next.ServeHTTP(w, r.WithContext(m.withClaims(r.Context(), logger, claims)))
	}
}

func (m *AuthMiddleware) parse(r *http.Request) (*models.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}

	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errInvalidFormat
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errSigningMethod
		}

		return m.jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errInvalidToken
	}

	return claims, nil
}

func (m *AuthMiddleware) withClaims(ctx context.Context, logger *slog.Logger, claims *models.Claims) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, claims)

	return WithLogger(ctx, logger.With(slog.String("userId", claims.UserID.String())))
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}
