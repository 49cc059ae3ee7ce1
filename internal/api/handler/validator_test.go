package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Email: "nope", Password: "short"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"email must be a valid email",
		"password must be at least 8 characters",
		"name is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&registerRequest{Email: "a@example.com", Password: "longenough", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_RequiredPointer(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&consentRequest{}); err == nil || err.Error() != "gdprConsent is required" {
		t.Fatalf("expected gdprConsent is required, got %v", err)
	}
	given := false
	if err := v.Validate(&consentRequest{GDPRConsent: &given}); err != nil {
		t.Fatalf("explicit false must be accepted: %v", err)
	}
}
