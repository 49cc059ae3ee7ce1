package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthdesk/assessment-api/internal/core/domain"
	"github.com/healthdesk/assessment-api/internal/core/service"
)

func TestRequired_ValidToken(t *testing.T) {
	users := newStubUsers(activeUser("u1"))
	c, rec := newContext(http.MethodGet, "Bearer "+issueToken(t, testSecret, "u1"), "")

	called := false
	handler := newAuth(users).Required()(func(c echo.Context) error {
		called = true
		p := PrincipalFrom(c)
		if p == nil {
			t.Fatalf("principal not attached")
		}
		if p.ID != "u1" || p.Email != "u1@example.com" || p.Role != domain.RoleUser || p.Name != "User u1" {
			t.Fatalf("unexpected principal: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequired_Failures(t *testing.T) {
	deleted := issueToken(t, testSecret, "gone")
	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrMissingToken},
		{"lowercase scheme", "bearer " + issueToken(t, testSecret, "u1"), domain.ErrMissingToken},
		{"other scheme", "Token abc", domain.ErrMissingToken},
		{"empty token", "Bearer ", domain.ErrMissingToken},
		{"garbage token", "Bearer not-a-token", domain.ErrInvalidToken},
		{"wrong secret", "Bearer " + issueToken(t, "other-secret", "u1"), domain.ErrInvalidToken},
		{"expired", "Bearer " + expiredToken(t, "u1"), domain.ErrTokenExpired},
		{"deleted user", "Bearer " + deleted, domain.ErrTokenUserNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, tc.header, "")
			err := newAuth(newStubUsers(activeUser("u1"))).Required()(mustNotRun(t))(c)
			assertErr(t, err, tc.want)
		})
	}
}

func TestRequired_ExpiredIsNotInvalid(t *testing.T) {
	c, _ := newContext(http.MethodGet, "Bearer "+expiredToken(t, "u1"), "")
	err := newAuth(newStubUsers(activeUser("u1"))).Required()(mustNotRun(t))(c)
	if errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expired token must not be reported as invalid")
	}
}

func TestRequired_LookupFailureIsInternal(t *testing.T) {
	users := newStubUsers()
	users.err = errors.New("mongo unavailable")
	c, _ := newContext(http.MethodGet, "Bearer "+issueToken(t, testSecret, "u1"), "")

	err := newAuth(users).Required()(mustNotRun(t))(c)
	var ie *domain.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InternalError, got %v", err)
	}
}

func TestRequired_DoesNotCheckActiveFlag(t *testing.T) {
	u := activeUser("u1")
	u.IsActive = false
	c, _ := newContext(http.MethodGet, "Bearer "+issueToken(t, testSecret, "u1"), "")

	called := false
	if err := newAuth(newStubUsers(u)).Required()(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("verification alone must not enforce the active flag")
	}
}

func TestOptional_FailuresContinueAnonymously(t *testing.T) {
	deactivated := activeUser("off")
	deactivated.IsActive = false
	users := newStubUsers(activeUser("u1"), deactivated)

	cases := map[string]string{
		"missing header": "",
		"bad scheme":     "Basic dXNlcjpwYXNz",
		"wrong secret":   "Bearer " + issueToken(t, "other-secret", "u1"),
		"expired":        "Bearer " + expiredToken(t, "u1"),
		"deleted user":   "Bearer " + issueToken(t, testSecret, "gone"),
		"deactivated":    "Bearer " + issueToken(t, testSecret, "off"),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, header, "")
			called := false
			handler := newAuth(users).Optional()(func(c echo.Context) error {
				called = true
				if PrincipalFrom(c) != nil {
					t.Fatalf("principal must not be attached")
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("optional auth must not fail, got %v", err)
			}
			if !called || rec.Code != http.StatusOK {
				t.Fatalf("expected downstream 200, called=%v code=%d", called, rec.Code)
			}
		})
	}
}

func TestOptional_LookupFailureContinues(t *testing.T) {
	users := newStubUsers()
	users.err = errors.New("mongo unavailable")
	c, _ := newContext(http.MethodGet, "Bearer "+issueToken(t, testSecret, "u1"), "")

	called := false
	if err := newAuth(users).Optional()(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestOptional_ValidTokenAttachesPrincipal(t *testing.T) {
	c, _ := newContext(http.MethodGet, "Bearer "+issueToken(t, testSecret, "u1"), "")

	var got *domain.Principal
	handler := newAuth(newStubUsers(activeUser("u1"))).Optional()(func(c echo.Context) error {
		got = PrincipalFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected principal u1, got %+v", got)
	}
}

func TestOptional_LogsReason(t *testing.T) {
	var buf bytes.Buffer
	a := NewAuthenticator(service.NewTokenService(testSecret, time.Hour), newStubUsers(), zerolog.New(&buf).Level(zerolog.DebugLevel))
	c, _ := newContext(http.MethodGet, "Bearer "+expiredToken(t, "u1"), "")

	called := false
	if err := a.Optional()(okHandler(&called))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "continuing unauthenticated") || !strings.Contains(out, "expired_token") {
		t.Fatalf("expected diagnostic log line, got %q", out)
	}
}

func TestRequired_RepeatedRequestsAreIndependent(t *testing.T) {
	users := newStubUsers(activeUser("u1"))
	auth := newAuth(users)
	header := "Bearer " + issueToken(t, testSecret, "u1")

	for i := 0; i < 2; i++ {
		c, rec := newContext(http.MethodGet, header, "")
		if PrincipalFrom(c) != nil {
			t.Fatalf("fresh request must start without principal")
		}
		called := false
		if err := auth.Required()(okHandler(&called))(c); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("request %d not authorized", i)
		}
	}
	if users.calls != 2 {
		t.Fatalf("expected a user lookup per request, got %d", users.calls)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", " abc ", true},
		{"Bearer ", "", false},
		{"Bearer", "", false},
		{"bearer abc", "", false},
		{"BEARER abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestReasonLabel(t *testing.T) {
	cases := map[error]string{
		domain.ErrMissingToken:                         "missing_token",
		domain.ErrInvalidToken:                         "invalid_token",
		domain.ErrTokenExpired:                         "expired_token",
		domain.ErrTokenUserNotFound:                    "user_not_found",
		domain.ErrAccountDeactivated:                   "account_deactivated",
		domain.Internal("x", errors.New("db is down")): "lookup_failed",
	}
	for err, want := range cases {
		if got := reasonLabel(err); got != want {
			t.Errorf("reasonLabel(%v) = %q, want %q", err, got, want)
		}
	}
}
