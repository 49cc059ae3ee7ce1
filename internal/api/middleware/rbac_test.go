package middleware

import (
	"net/http"
	"testing"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	c, rec := newContext(http.MethodGet, "", "")
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), &domain.Principal{ID: "a", Role: domain.RoleAdmin})))

	called := false
	if err := RBAC(domain.RoleAdmin)(okHandler(&called))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c, _ := newContext(http.MethodGet, "", "")
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), &domain.Principal{ID: "u", Role: domain.RoleUser})))

	assertErr(t, RBAC(domain.RoleAdmin)(mustNotRun(t))(c), domain.ErrForbidden)
}

func TestRBAC_NoPrincipal(t *testing.T) {
	c, _ := newContext(http.MethodGet, "", "")
	assertErr(t, RBAC(domain.RoleAdmin)(mustNotRun(t))(c), domain.ErrForbidden)
}
