package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthdesk/assessment-api/internal/core/domain"
)

func TestUserMapping_RoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	now := time.Unix(1_700_000_000, 0).UTC()
	in := &domain.User{
		ID:           oid.Hex(),
		Email:        "a@example.com",
		Name:         "Alice",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		IsActive:     true,
		GDPRConsent:  domain.GDPRConsent{ConsentGiven: true, ConsentDate: now, ConsentVersion: "1.0"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	out := toDomain(fromDomain(in))
	if *out != *in {
		t.Fatalf("mapping mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestUserMapping_ZeroTimes(t *testing.T) {
	doc := fromDomain(&domain.User{ID: "not-hex"})
	if doc.ID != primitive.NilObjectID {
		t.Fatalf("expected nil object id for malformed id")
	}
	if doc.CreatedAt != 0 || doc.GDPRConsent.ConsentDate != 0 {
		t.Fatalf("expected zero timestamps, got %d %d", doc.CreatedAt, doc.GDPRConsent.ConsentDate)
	}
	if !toDomain(doc).CreatedAt.IsZero() {
		t.Fatalf("expected zero time after mapping back")
	}
}
