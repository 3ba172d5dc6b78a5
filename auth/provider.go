// Package auth issues and verifies the session cookies of signed in users
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// SessionProvider resolves a session cookie to the uid it was issued for
type SessionProvider interface {
	Verify(ctx context.Context, session string) (uid string, err error)
}
