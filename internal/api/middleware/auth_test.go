package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s *stubVerifier) Verify(token string, now time.Time) (string, error) {
	return s.subject, s.err
}

type stubUserFinder struct {
	user *domain.User
	err  error
}

func (s *stubUserFinder) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.user, s.err
}

func callGate(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (echo.Context, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c, called
}

func TestIdentity_ValidTokenBindsIdentity(t *testing.T) {
	verifier := &stubVerifier{subject: "alice"}
	finder := &stubUserFinder{user: &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, IsActive: true}}

	req := httptest.NewRequest(http.MethodGet, "/api/dreams", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	c, called := callGate(t, Identity(verifier, finder, "/api/auth"), req)
	if !called {
		t.Fatalf("next not called")
	}

	ident, ok := c.Get(IdentityKey).(domain.Identity)
	if !ok {
		t.Fatalf("identity not bound")
	}
	if ident.UserID != "u1" || ident.Username != "alice" || ident.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestIdentity_ExemptPrefixSkipsGate(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("should not be consulted")}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Authorization", "Bearer anything")

	c, called := callGate(t, Identity(verifier, &stubUserFinder{}, "/api/auth"), req)
	if !called {
		t.Fatalf("next not called")
	}
	if _, ok := c.Get(IdentityKey).(domain.Identity); ok {
		t.Fatalf("exempt path must not bind an identity")
	}
}

func TestIdentity_AnonymousOnFailure(t *testing.T) {
	active := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, IsActive: true}

	cases := []struct {
		name     string
		header   string
		verifier *stubVerifier
		finder   *stubUserFinder
	}{
		{"missing header", "", &stubVerifier{subject: "alice"}, &stubUserFinder{user: active}},
		{"wrong scheme", "Token abc", &stubVerifier{subject: "alice"}, &stubUserFinder{user: active}},
		{"bad token", "Bearer abc", &stubVerifier{err: domain.ErrTokenSignatureInvalid}, &stubUserFinder{user: active}},
		{"expired token", "Bearer abc", &stubVerifier{err: domain.ErrTokenExpired}, &stubUserFinder{user: active}},
		{"unknown subject", "Bearer abc", &stubVerifier{subject: "ghost"}, &stubUserFinder{err: domain.ErrUserNotFound}},
		{"inactive account", "Bearer abc", &stubVerifier{subject: "alice"}, &stubUserFinder{user: &domain.User{ID: "u1", Username: "alice", IsActive: false}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dreams", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			c, called := callGate(t, Identity(tc.verifier, tc.finder, "/api/auth"), req)
			if !called {
				t.Fatalf("gate must never reject, next not called")
			}
			if _, ok := c.Get(IdentityKey).(domain.Identity); ok {
				t.Fatalf("expected anonymous request, identity was bound")
			}
		})
	}
}

func TestIdentity_DoesNotOverwriteExistingIdentity(t *testing.T) {
	verifier := &stubVerifier{subject: "mallory"}
	finder := &stubUserFinder{user: &domain.User{ID: "u9", Username: "mallory", Role: domain.RoleAdmin, IsActive: true}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dreams", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	bound := domain.Identity{UserID: "u1", Username: "alice", Role: domain.RoleUser}
	c.Set(IdentityKey, bound)

	handler := Identity(verifier, finder, "/api/auth")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	ident, ok := c.Get(IdentityKey).(domain.Identity)
	if !ok {
		t.Fatalf("identity missing")
	}
	if ident != bound {
		t.Fatalf("identity was overwritten: %+v", ident)
	}
}
