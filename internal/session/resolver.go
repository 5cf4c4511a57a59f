package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campushub/campushub/internal/authz"
)

// Resolver derives the typed session from an inbound request. It reads the
// request explicitly rather than any ambient state so it stays pure and
// testable.
type Resolver struct {
	codec  *Codec
	logger *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(codec *Codec, logger *slog.Logger) *Resolver {
	return &Resolver{codec: codec, logger: logger}
}

// Resolve returns the session carried by the request cookie, or nil for
// anonymous. An invalid or expired token degrades to anonymous instead of
// failing the request; a broken cookie is a logged-out browser, not an
// error page.
func (r *Resolver) Resolve(req *http.Request) *authz.Session {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return nil
	}
	claims, err := r.codec.Verify(cookie.Value)
	if err != nil {
		if r.logger != nil && !errors.Is(err, ErrTokenExpired) {
			r.logger.Debug("session token rejected", slog.Any("error", err))
		}
		return nil
	}
	return claims.Session()
}
