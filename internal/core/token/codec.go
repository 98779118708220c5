// Package token implements the signed bearer token format: a compact JWS
// signed with HMAC-SHA512, carrying subject, issued-at, and expiry claims.
// Validity is decided entirely from the token's own signed content plus
// wall-clock time; no server-side record of issued tokens exists.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen guards against trivially brute-forceable HMAC keys.
const minSecretLen = 32

var (
	ErrWeakSecret       = errors.New("signing secret missing or too short")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
)

// Codec issues and parses tokens with a single process-lifetime secret.
// Rotating the secret invalidates every outstanding token at once; that
// trade-off is accepted in exchange for fully stateless validation.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Codec. It fails with ErrWeakSecret when the secret is
// shorter than 32 bytes.
func New(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < minSecretLen {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the default lifetime applied by Issue.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for subject using the codec's default TTL.
func (c *Codec) Issue(subject string) (string, error) {
	return c.IssueWithTTL(subject, c.ttl)
}

// IssueWithTTL signs a token for subject expiring after ttl.
func (c *Codec) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
// Errors are one of ErrTokenMalformed, ErrSignatureInvalid, ErrTokenExpired.
func (c *Codec) Parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, normalizeError(err)
	}
	return claims, nil
}

// Subject parses the token and returns its subject claim.
func (c *Codec) Subject(token string) (string, error) {
	claims, err := c.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// normalizeError collapses jwt library errors into the codec's own kinds so
// callers never depend on the underlying implementation.
func normalizeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}
