// Package auth holds the signed-in identity of the dashboard.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/cristianoliveira/notes-dash/internal/colors"
)

// ErrUnauthorized matches remote errors caused by a missing or rejected token.
var ErrUnauthorized = errors.New("auth: unauthorized")

// User is the identity the notes belong to.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserSource answers who a token belongs to.
type UserSource interface {
	CurrentUser(ctx context.Context) (User, error)
}

// Session is the current sign-in state. The zero value is signed out.
type Session struct {
	mu       sync.RWMutex
	user     *User
	token    string
	onLogout []func()
}

// NewSession returns a session signed in as user. A nil user is signed out.
func NewSession(user *User, token string) *Session {
	s := &Session{token: token}
	if user != nil {
		u := *user
		s.user = &u
	}
	return s
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn reports whether a user is present.
func (s *Session) SignedIn() bool {
	return s.User() != nil
}

// Token returns the bearer token, empty when none.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// OnLogout registers fn to run after Logout.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Logout clears the identity and token, then runs the registered callbacks
// once. Logging out a signed-out session does nothing.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.user == nil && s.token == "" {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = ""
	callbacks := s.onLogout
	s.onLogout = nil
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Resolve builds a session for token by asking src who it belongs to.
// A rejected token yields a signed-out session. When the remote cannot
// answer for another reason the session falls back to fallbackName so the
// dashboard can still open and report the failure itself.
func Resolve(ctx context.Context, src UserSource, token, fallbackName string) *Session {
	user, err := src.CurrentUser(ctx)
	switch {
	case err == nil:
		if user.Name == "" {
			user.Name = fallbackName
		}
		return NewSession(&user, token)
	case errors.Is(err, ErrUnauthorized):
		colors.Debug("token rejected:", err.Error())
		return NewSession(nil, "")
	default:
		colors.Debug("unable to resolve current user:", err.Error())
		if fallbackName == "" {
			fallbackName = "there"
		}
		return NewSession(&User{Name: fallbackName}, token)
	}
}
