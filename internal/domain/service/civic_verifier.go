// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"civicreport/internal/domain/entity"
)

// CivicVerifier validates an externally issued civic identity token and
// extracts its claims payload.
//
// Two implementations exist: a verifying one that checks the token signature
// against the provider's published key set, and a decode-only one that
// extracts claims without verification. The decode-only implementation is
// insecure and must only be selected by explicit configuration.
type CivicVerifier interface {
	// Verify parses rawToken and returns its claims. It fails with
	// domainerrors.ErrTokenInvalid when the token cannot be decoded and with
	// domainerrors.ErrTokenUntrusted when signature verification fails or
	// the signing key cannot be fetched.
	Verify(ctx context.Context, rawToken string) (*entity.ExternalClaims, error)
}
