package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
)

const (
	guestContextKey    = contextKey("guest_session")
	GuestSessionHeader = "X-Guest-Session"
)

// GuestSession makes sure every request carries a guest session id, issuing a
// cookie when the client sent none.
type GuestSession struct {
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewGuestSession(cookieName string, ttl time.Duration, secure bool) *GuestSession {
	return &GuestSession{cookieName: cookieName, ttl: ttl, secure: secure}
}

func (g *GuestSession) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guestID := g.fromRequest(r)

		if guestID == "" {
			guestID = uuid.NewString()

			http.SetCookie(w, &http.Cookie{
				Name:     g.cookieName,
				Value:    guestID,
				Path:     "/",
				MaxAge:   int(g.ttl.Seconds()),
				HttpOnly: true,
				Secure:   g.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		w.Header().Set(GuestSessionHeader, guestID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), guestContextKey, guestID)))
	})
}

// Only well-formed UUIDs are accepted so clients cannot pick arbitrary keys.
func (g *GuestSession) fromRequest(r *http.Request) string {
	if c, err := r.Cookie(g.cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	if id, err := uuid.Parse(r.Header.Get(GuestSessionHeader)); err == nil {
		return id.String()
	}

	return ""
}

// SessionFromContext combines the guest id with any authenticated identity.
func SessionFromContext(ctx context.Context) models.Session {
	session := models.Session{}

	if guestID, ok := ctx.Value(guestContextKey).(string); ok {
		session.GuestID = guestID
	}

	if claims, ok := ClaimsFromContext(ctx); ok {
		session.UserID = claims.UserID
		session.Email = claims.Email
	}

	return session
}

// WithGuestID is used by tests and background callers that bypass the middleware.
func WithGuestID(ctx context.Context, guestID string) context.Context {
	return context.WithValue(ctx, guestContextKey, guestID)
}
