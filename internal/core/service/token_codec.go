package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// TokenCodec issues and verifies compact signed identity tokens. It is a
// pure function of its inputs and the process-wide signing key: no clock
// reads, no storage.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenCodec creates a codec signing HS256 tokens that expire lifetime
// after issuance. A non-positive lifetime falls back to 24h.
func NewTokenCodec(secret string, lifetime time.Duration) *TokenCodec {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), lifetime: lifetime}
}

// Issue produces a signed token embedding subject, issued-at, and expiry.
func (c *TokenCodec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the token's signature and expiry against now and returns the
// embedded subject. Failures map to domain.ErrTokenMalformed,
// domain.ErrTokenSignatureInvalid, or domain.ErrTokenExpired.
func (c *TokenCodec) Verify(token string, now time.Time) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignatureInvalid
		default:
			return "", domain.ErrTokenMalformed
		}
	}

	return claims.Subject, nil
}
