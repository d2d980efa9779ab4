package session

import (
	"time"
)

// Session is the persisted authentication state: the cookie set returned by
// the login endpoint plus its validity window.
type Session struct {
	Cookies   map[string]string `json:"cookies"`
	UserEmail string            `json:"user_email,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
}

// DefaultTTL is the validity window applied to fresh logins. The vendor does
// not advertise cookie lifetimes, seven days tracks observed behavior.
const DefaultTTL = 7 * 24 * time.Hour

func New(cookies map[string]string, userEmail string, now time.Time) *Session {
	expires := now.Add(DefaultTTL)
	return &Session{
		Cookies:   cookies,
		UserEmail: userEmail,
		CreatedAt: now,
		ExpiresAt: &expires,
	}
}

// Expired reports whether the session's validity window has passed. Sessions
// without an expiry never expire.
func (s *Session) Expired() bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*s.ExpiresAt)
}
