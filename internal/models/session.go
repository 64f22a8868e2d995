package models

import "github.com/google/uuid"

// Session identifies the shopper behind a request. GuestID is always present;
// UserID is set once the request carries a valid token.
type Session struct {
	GuestID string
	UserID  uuid.UUID
	Email   string
}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// Key scopes per-session state such as the checkout wizard snapshot.
func (s Session) Key() string {
	if s.Authenticated() {
		return "user:" + s.UserID.String()
	}

	return "guest:" + s.GuestID
}
