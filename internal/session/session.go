package session

import (
	"context"
	"errors"
)

// ErrNotAuthenticated blocks every mutating operation. Read-only viewing of
// already-loaded records stays available to the caller.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session identifies the user whose purchase history is in scope.
type Session struct {
	UserID        string
	Authenticated bool
}

// Authenticator supplies the session at start-up. Implementations may block
// on an external handshake; the pricing core is never invoked before the
// session reports authenticated.
type Authenticator interface {
	Session(ctx context.Context) (Session, error)
}

// Static authenticates from configuration alone, the single-user deployment
// case. An empty user id yields an unauthenticated session.
type Static struct {
	userID string
}

// NewStatic constructs a config-backed authenticator.
func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

// Session implements Authenticator.
func (s *Static) Session(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	if s.userID == "" {
		return Session{}, ErrNotAuthenticated
	}
	return Session{UserID: s.userID, Authenticated: true}, nil
}

var _ Authenticator = (*Static)(nil)
