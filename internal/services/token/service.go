// Package token issues and verifies stateless signed session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

const issuer = "folio-server"

// Service signs and verifies HMAC-SHA256 JWTs carrying an identity claim.
// Tokens are not stored server-side and cannot be revoked: validity is
// determined purely by signature and expiry at verification time.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable clock for testing
}

// NewService creates a token service with the given signing secret and TTL.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token for the identity, valid for the configured TTL.
func (s *Service) Issue(identity string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": identity,
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning the embedded identity.
// Failures carry one of the stable token error categories.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", categorize(err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("missing identity claim: %w", common.ErrTokenMalformed)
	}
	return sub, nil
}

// categorize maps jwt parse errors onto the stable error categories.
func categorize(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %s", common.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %s", common.ErrTokenSignature, err)
	default:
		return fmt.Errorf("%w: %s", common.ErrTokenMalformed, err)
	}
}

// Ensure Service implements TokenService
var _ interfaces.TokenService = (*Service)(nil)
