package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/api/metrics"
	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// IdentityKey is the echo context key the gate binds the caller under.
const IdentityKey = "identity"

// TokenVerifier checks a token against now and returns its subject.
type TokenVerifier interface {
	Verify(token string, now time.Time) (string, error)
}

// UserFinder resolves a verified subject to a stored account.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Identity resolves the caller for every request. It never rejects: a
// missing, misshapen, or invalid token leaves the request anonymous, and
// downstream authorization decides whether anonymous access is allowed.
// Paths under exemptPrefix skip the gate entirely so registration and login
// stay reachable without a token.
func Identity(verifier TokenVerifier, users UserFinder, exemptPrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if exemptPrefix != "" && strings.HasPrefix(c.Request().URL.Path, exemptPrefix) {
				metrics.AuthGateTotal.WithLabelValues("exempt").Inc()
				return next(c)
			}

			// Authenticating twice within one request is a no-op.
			if _, ok := c.Get(IdentityKey).(domain.Identity); ok {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return anonymous(next, c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return anonymous(next, c)
			}

			subject, err := verifier.Verify(parts[1], time.Now().UTC())
			if err != nil {
				return anonymous(next, c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil || !user.IsActive {
				return anonymous(next, c)
			}

			c.Set(IdentityKey, domain.Identity{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
			})
			metrics.AuthGateTotal.WithLabelValues("authenticated").Inc()
			return next(c)
		}
	}
}

func anonymous(next echo.HandlerFunc, c echo.Context) error {
	metrics.AuthGateTotal.WithLabelValues("anonymous").Inc()
	return next(c)
}
