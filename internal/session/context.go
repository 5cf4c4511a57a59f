package session

import (
	"context"

	"github.com/campushub/campushub/internal/authz"
)

type sessionContextKey struct{}

// ContextWithSession stores the resolved session in context.
func ContextWithSession(ctx context.Context, sess *authz.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext extracts the session from context; nil means anonymous.
func FromContext(ctx context.Context) *authz.Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*authz.Session)
	return sess
}
