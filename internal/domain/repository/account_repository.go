// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"civicreport/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrStoreUnavailable is returned when the durable store cannot be reached
// (connection refused, server selection timeout, network partition). The
// exchange orchestrator recovers from it via the degraded-mode store.
var ErrStoreUnavailable = errors.New("durable store unavailable")

// Conflict field names reported by ConflictError.
const (
	ConflictFieldEmail      = "email"
	ConflictFieldExternalID = "externalId"
)

// ConflictError reports a unique-index violation and which field collided,
// so callers can re-query by that field and converge on the existing record.
type ConflictError struct {
	Field string // "email" or "externalId"
	Err   error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate key on %s: %v", e.Field, e.Err)
}

// Unwrap exposes the underlying store error.
func (e *ConflictError) Unwrap() error {
	return e.Err
}

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its store-assigned id.
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByExternalID retrieves a single account by its identity-provider subject.
	FindByExternalID(ctx context.Context, externalID string) (*entity.Account, error)

	// Create persists a new account. A unique-index violation surfaces as
	// *ConflictError; an unreachable store surfaces as ErrStoreUnavailable.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account by id.
	Update(ctx context.Context, account *entity.Account) error
}
