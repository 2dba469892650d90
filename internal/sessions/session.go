package sessions

import (
	"errors"
	"time"
)

// CookieName is the HTTP-only cookie carrying the session token.
const CookieName = "session_token"

var (
	// ErrUsernameTooShort is returned before any credential comparison.
	ErrUsernameTooShort = errors.New("username must be at least 5 characters")
	// ErrInvalidCredentials is returned when the password check fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated covers missing, unknown and expired tokens alike;
	// callers are deliberately not told which.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Session is an authenticated session keyed by an opaque token. Sessions are
// immutable once created; they are only ever deleted.
type Session struct {
	Token     string    `bson:"_id" json:"token"`
	Username  string    `bson:"username" json:"username"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
