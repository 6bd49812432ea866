package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LicenseStatus is derived from a license's expiry date.
type LicenseStatus string

const (
	LicenseActive  LicenseStatus = "active"
	LicenseExpired LicenseStatus = "expired"
)

// Validation errors for organizations.
var (
	ErrEmptyOrganizationName = validationError("organization name cannot be empty")
	ErrInvalidSeats          = validationError("seats must be positive")
	ErrMissingExpiry         = validationError("license expiry is required")
)

// Organization is a school holding a seat license.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Seats     int       `json:"seats"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrganization creates an organization with a license of seats until expiresAt.
func NewOrganization(name, contact string, seats int, expiresAt time.Time) (*Organization, error) {
	org := &Organization{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		Seats:     seats,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := org.Validate(); err != nil {
		return nil, err
	}
	return org, nil
}

// Validate checks if the Organization has valid data.
func (o *Organization) Validate() error {
	if o.ID == uuid.Nil {
		return ErrInvalidID
	}
	if o.Name == "" {
		return ErrEmptyOrganizationName
	}
	if o.Seats <= 0 {
		return ErrInvalidSeats
	}
	if o.ExpiresAt.IsZero() {
		return ErrMissingExpiry
	}
	return nil
}

// LicenseStatus reports whether the license is still valid at now.
func (o *Organization) LicenseStatus(now time.Time) LicenseStatus {
	if now.Before(o.ExpiresAt) {
		return LicenseActive
	}
	return LicenseExpired
}

// OrganizationLicense is an organization together with its seat usage.
type OrganizationLicense struct {
	Organization
	UsedSeats int           `json:"used"`
	Status    LicenseStatus `json:"status"`
}
