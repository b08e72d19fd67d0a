package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context) (User, error)

func (f sourceFunc) CurrentUser(ctx context.Context) (User, error) { return f(ctx) }

func TestZeroSessionIsSignedOut(t *testing.T) {
	var s Session
	assert.False(t, s.SignedIn())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestUserReturnsCopy(t *testing.T) {
	s := NewSession(&User{ID: "1", Name: "Ada"}, "tok")

	u := s.User()
	u.Name = "changed"

	assert.Equal(t, "Ada", s.User().Name)
}

func TestLogoutClearsAndRunsCallbacksOnce(t *testing.T) {
	s := NewSession(&User{Name: "Ada"}, "tok")
	calls := 0
	s.OnLogout(func() {
		calls++
		assert.False(t, s.SignedIn(), "callbacks see the signed-out state")
	})

	s.Logout()
	s.Logout()

	assert.Equal(t, 1, calls)
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		src       sourceFunc
		fallback  string
		signedIn  bool
		wantName  string
		wantToken string
	}{
		{
			name:      "remote answers",
			src:       func(context.Context) (User, error) { return User{ID: "u1", Name: "Ada"}, nil },
			fallback:  "local",
			signedIn:  true,
			wantName:  "Ada",
			wantToken: "tok",
		},
		{
			name:      "remote answers without name",
			src:       func(context.Context) (User, error) { return User{ID: "u1"}, nil },
			fallback:  "local",
			signedIn:  true,
			wantName:  "local",
			wantToken: "tok",
		},
		{
			name:     "token rejected",
			src:      func(context.Context) (User, error) { return User{}, fmt.Errorf("status 401: %w", ErrUnauthorized) },
			fallback: "local",
			signedIn: false,
		},
		{
			name:      "remote down",
			src:       func(context.Context) (User, error) { return User{}, errors.New("connection refused") },
			fallback:  "local",
			signedIn:  true,
			wantName:  "local",
			wantToken: "tok",
		},
		{
			name:      "remote down without fallback",
			src:       func(context.Context) (User, error) { return User{}, errors.New("connection refused") },
			signedIn:  true,
			wantName:  "there",
			wantToken: "tok",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Resolve(context.Background(), tt.src, "tok", tt.fallback)
			require.Equal(t, tt.signedIn, s.SignedIn())
			if tt.signedIn {
				assert.Equal(t, tt.wantName, s.User().Name)
			}
			assert.Equal(t, tt.wantToken, s.Token())
		})
	}
}
