// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
)

// CivicExchangeInput carries the externally issued civic identity token.
type CivicExchangeInput struct {
	CivicToken string `json:"civicToken"`
}

// ExchangeUser is the normalized profile projection returned alongside a
// session token. Durable and ephemeral accounts both fit this shape, so the
// degraded-mode substitution is invisible to clients.
type ExchangeUser struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Role        string `json:"role"`
	IsVerified  bool   `json:"isVerified"`
}

// CivicExchangeOutput is the result of a successful exchange: a fresh
// session credential plus the resolved user profile.
type CivicExchangeOutput struct {
	Token string        `json:"token"`
	User  *ExchangeUser `json:"user"`
}

// AuthUsecase defines the identity-resolution and session-issuance flow.
type AuthUsecase interface {
	// CivicExchange verifies an external civic token, resolves it to a
	// local account (falling back to an ephemeral one when the durable
	// store is unreachable) and mints a citizen session credential.
	CivicExchange(ctx context.Context, input *CivicExchangeInput) (*CivicExchangeOutput, error)
}
