// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// CitizenRole is the role embedded in session tokens issued by the civic exchange.
const CitizenRole = "citizen"

// AdminRole is the role carried by administrator session tokens.
const AdminRole = "admin"

// Account represents a citizen known to the platform. Accounts created
// through the civic exchange have a random placeholder password hash and no
// interactive login path; ExternalID links them to the identity provider.
//
// Durable accounts are unique per email, and unique per ExternalID when one
// is set. Ephemeral accounts handed out by the degraded-mode store reuse this
// type with a derived ID and the Ephemeral flag set.
type Account struct {
	ID           string    // Store-assigned id, or a derived key for ephemeral accounts.
	FullName     string
	Email        string    // Unique across durable accounts.
	PasswordHash string    // Optional; random placeholder for externally-originated accounts.
	PhoneNumber  string
	ExternalID   string    // Identity-provider subject; unique when present.
	IsVerified   bool
	Ephemeral    bool      // True when the account lives only in process memory.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
