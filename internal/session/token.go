package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushub/campushub/internal/authz"
)

// TokenTTL is the fixed session lifetime. There is no refresh or rotation;
// a token is valid from issuance until expiry or until the client drops it.
const TokenTTL = 24 * time.Hour

var (
	// ErrBadSignature indicates a tampered or foreign token.
	ErrBadSignature = errors.New("session: bad token signature")
	// ErrTokenExpired indicates a token past its expiry.
	ErrTokenExpired = errors.New("session: token expired")
)

// Claims is the signed claim set carried inside a session token.
type Claims struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	DepartmentID int64  `json:"departmentId,omitempty"`
	jwt.RegisteredClaims
}

// Session converts verified claims into the typed session used by the
// authorization layer. Returns nil when the role claim is unknown.
func (c *Claims) Session() *authz.Session {
	role, ok := authz.ParseRole(c.Role)
	if !ok {
		return nil
	}
	return &authz.Session{
		UserID:       c.UserID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         role,
		DepartmentID: c.DepartmentID,
	}
}

// Codec signs and verifies session tokens with a process-wide HMAC secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec constructs a Codec. An empty secret is refused so the caller can
// treat it as a fatal startup condition.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret must be provided")
	}
	return &Codec{secret: []byte(secret), now: time.Now}, nil
}

// WithNow overrides the codec clock for testing.
func (c *Codec) WithNow(fn func() time.Time) {
	if fn != nil {
		c.now = fn
	}
}

// Issue serializes and signs the identity snapshot, stamping issuance and
// expiry. The department is embedded so resolving a session never needs a
// store lookup.
func (c *Codec) Issue(identity authz.Session) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		UserID:       identity.UserID,
		Email:        identity.Email,
		Role:         string(identity.Role),
		Name:         identity.Name,
		DepartmentID: identity.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature integrity and expiry. Both failure modes are
// terminal; there is no partial trust in a broken token.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrBadSignature
	}
	if !parsed.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}
