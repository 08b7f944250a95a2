package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

func invokeGuard(t *testing.T, mw echo.MiddlewareFunc, ident *domain.Identity) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set(IdentityKey, *ident)
	}

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called
}

func TestRequireAuth(t *testing.T) {
	err, called := invokeGuard(t, RequireAuth(), nil)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %v", err)
	}
	if called {
		t.Fatalf("next must not run for anonymous request")
	}

	err, called = invokeGuard(t, RequireAuth(), &domain.Identity{UserID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("authenticated request rejected: %v", err)
	}
	if !called {
		t.Fatalf("next not called for authenticated request")
	}
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(domain.RoleAdmin)

	err, _ := invokeGuard(t, guard, nil)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %v", err)
	}

	err, called := invokeGuard(t, guard, &domain.Identity{UserID: "u1", Role: domain.RoleUser})
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %v", err)
	}
	if called {
		t.Fatalf("next must not run for wrong role")
	}

	err, called = invokeGuard(t, guard, &domain.Identity{UserID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if !called {
		t.Fatalf("next not called for admin")
	}
}
