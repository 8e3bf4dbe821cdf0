// Package session exposes the authenticated user's identity. Authentication
// itself is an external collaborator; this subsystem only consumes the
// resolved user id.
package session

import (
	"context"
	"errors"
)

// ErrNoUser is returned when no authenticated user is attached to the context.
var ErrNoUser = errors.New("no authenticated user in context")

// Session resolves the current user's id.
type Session interface {
	UserID(ctx context.Context) (string, error)
}

type ctxKey struct{}

// WithUserID attaches an authenticated user id to the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ContextSession reads the user id the transport layer attached to the
// request context.
type ContextSession struct{}

// NewContextSession returns a context-backed Session.
func NewContextSession() Session { return ContextSession{} }

// UserID returns the attached user id or ErrNoUser.
func (ContextSession) UserID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", ErrNoUser
	}
	return id, nil
}
