// Package session holds the per-client state of the app: which city is being
// viewed and which user, if any, is signed in. A Session travels with the
// request context; there is no process-wide current session.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/lox/mawj/internal/cities"
)

type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id,omitempty"`
	City   string `json:"city"`
}

// New starts an anonymous session on the default city.
func New() *Session {
	return &Session{
		Token: uuid.NewString(),
		City:  cities.DefaultCode,
	}
}

// Authenticated reports whether a user is attached.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// SetCity switches the viewed city. Unknown codes are ignored and reported.
func (s *Session) SetCity(code string) bool {
	c, ok := cities.Lookup(code)
	if !ok {
		return false
	}
	s.City = c.Code
	return true
}

// SetUser attaches a signed-in user and moves to their default city when they
// have a valid one.
func (s *Session) SetUser(userID int64, defaultCity string) {
	s.UserID = userID
	if defaultCity != "" {
		s.SetCity(defaultCity)
	}
}

// Clear signs the user out and returns to the default city. The token is kept.
func (s *Session) Clear() {
	s.UserID = 0
	s.City = cities.DefaultCode
}

type contextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session carried by ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
