package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// GDPRConsent is the stored record of a user's data-processing consent.
type GDPRConsent struct {
	ConsentGiven   bool      `json:"consentGiven"`
	ConsentDate    time.Time `json:"consentDate,omitzero"`
	ConsentVersion string    `json:"consentVersion,omitempty"`
}

// User models an account owned by the user-management side of the system.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"-"`
	Role         string      `json:"role"`
	IsActive     bool        `json:"isActive"`
	GDPRConsent  GDPRConsent `json:"gdprConsent"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// HasConsent reports whether the user has granted data-processing consent.
func (u *User) HasConsent() bool {
	return u != nil && u.GDPRConsent.ConsentGiven
}

// Principal returns the request-scoped projection of u.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}
