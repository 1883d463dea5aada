package entity

import "strings"

// FallbackDisplayName is used when a civic token carries no usable name or email.
const FallbackDisplayName = "Civic User"

// ExternalClaims is the payload extracted from a verified civic identity
// token. It lives for a single exchange call and is never persisted.
type ExternalClaims struct {
	Subject    string // Stable provider-side identifier ("sub"), may be empty.
	Email      string
	Name       string
	GivenName  string
	FamilyName string
}

// DisplayName derives a human-readable name from the claims: the explicit
// name, else the composed given+family name, else the email, else a fixed
// placeholder.
func (c *ExternalClaims) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}

	composed := strings.TrimSpace(strings.TrimSpace(c.GivenName) + " " + strings.TrimSpace(c.FamilyName))
	if composed != "" {
		return composed
	}

	if c.Email != "" {
		return c.Email
	}

	return FallbackDisplayName
}

// HasEmail reports whether the claims carry the minimum viable identity anchor.
func (c *ExternalClaims) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}
