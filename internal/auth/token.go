// README: Stateless signed credentials carrying caller identity and role.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"swiftlogix/internal/types"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a wire value onto a known role.
func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return Role(v), true
	}
	return "", false
}

// Identity is the decoded subject of a verified credential.
// It is immutable for the lifetime of one request.
type Identity struct {
	UserID types.ID
	Role   Role
}

var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("token malformed")
)

const DefaultTokenTTL = 8 * time.Hour

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens. Verification depends only on
// the signing key and the clock, so it is safe to share across requests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a credential for the given identity, valid for the service TTL.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := s.now()
	c := claims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(id.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	var c claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrMalformed
	}
	role, ok := ParseRole(c.Role)
	if !ok || c.Subject == "" {
		return Identity{}, ErrMalformed
	}
	return Identity{UserID: types.ID(c.Subject), Role: role}, nil
}
