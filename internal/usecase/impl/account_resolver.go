// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"civicreport/internal/domain/entity"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/repository"
	"civicreport/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AccountResolver maps verified external identity claims onto durable
// accounts: it finds an existing account by email or external subject,
// backfills identity fields on match, and provisions a new verified
// account otherwise.
type AccountResolver struct {
	accounts repository.AccountRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// NewAccountResolver is the constructor for AccountResolver.
func NewAccountResolver(
	accounts repository.AccountRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) *AccountResolver {
	return &AccountResolver{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger,
	}
}

// Resolve finds or creates the durable account for the given claims.
// Store-unavailability errors pass through unchanged so the caller can
// switch to the ephemeral fallback.
func (r *AccountResolver) Resolve(ctx context.Context, claims *entity.ExternalClaims) (*entity.Account, error) {
	if !claims.HasEmail() {
		return nil, domainerrors.ErrClaimsIncomplete
	}

	account, err := r.lookup(ctx, claims)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return r.reconcile(ctx, account, claims)
	}

	account, err = r.provision(ctx, claims)
	if err == nil {
		return account, nil
	}

	// A concurrent exchange may have created the account between the
	// lookup and the insert. Re-query on the conflicting field and
	// reconcile against the winner instead of failing.
	var conflict *repository.ConflictError
	if errors.As(err, &conflict) {
		r.logger.Debug("Account creation raced, re-querying",
			slog.String("field", conflict.Field), slog.String("email", claims.Email))

		winner, findErr := r.findByConflictField(ctx, conflict.Field, claims)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "failed to recover from account creation conflict")
		}

		return r.reconcile(ctx, winner, claims)
	}

	return nil, err
}

// lookup searches by email first, then by external subject. A nil account
// with a nil error means no match.
func (r *AccountResolver) lookup(ctx context.Context, claims *entity.ExternalClaims) (*entity.Account, error) {
	account, err := r.accounts.FindByEmail(ctx, claims.Email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up account by email")
	}

	if claims.Subject == "" {
		return nil, nil
	}

	account, err = r.accounts.FindByExternalID(ctx, claims.Subject)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up account by external id")
	}

	return nil, nil
}

// reconcile backfills identity fields on an existing account. The external
// subject is only recorded when the account has none, and the display name
// only fills an empty slot. Verification is always forced on.
func (r *AccountResolver) reconcile(ctx context.Context, account *entity.Account, claims *entity.ExternalClaims) (*entity.Account, error) {
	changed := false

	if account.ExternalID == "" && claims.Subject != "" {
		account.ExternalID = claims.Subject
		changed = true
	}
	if !account.IsVerified {
		account.IsVerified = true
		changed = true
	}
	if account.FullName == "" {
		account.FullName = claims.DisplayName()
		changed = true
	}

	if !changed {
		return account, nil
	}

	if err := r.accounts.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to backfill account identity fields")
	}

	return account, nil
}

// provision creates a fresh verified account for the claims. The password
// slot is filled with a hash of a random throwaway value so the account
// never has a usable password credential.
func (r *AccountResolver) provision(ctx context.Context, claims *entity.ExternalClaims) (*entity.Account, error) {
	placeholder, err := r.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash placeholder password")
	}

	account := &entity.Account{
		FullName:     claims.DisplayName(),
		Email:        claims.Email,
		PasswordHash: placeholder,
		ExternalID:   claims.Subject,
		IsVerified:   true,
	}

	if err := r.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	r.logger.Info("Provisioned account for external identity",
		slog.String("accountID", account.ID), slog.String("email", account.Email))

	return account, nil
}

func (r *AccountResolver) findByConflictField(ctx context.Context, field string, claims *entity.ExternalClaims) (*entity.Account, error) {
	if field == repository.ConflictFieldExternalID && claims.Subject != "" {
		return r.accounts.FindByExternalID(ctx, claims.Subject)
	}

	return r.accounts.FindByEmail(ctx, claims.Email)
}
