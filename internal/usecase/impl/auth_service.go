package impl

import (
	"context"
	"log/slog"
	"strings"

	"civicreport/internal/domain/entity"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/repository"
	"civicreport/internal/domain/service"
	"civicreport/internal/infra/persistence/memory"
	"civicreport/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	verifier service.CivicVerifier
	resolver *AccountResolver
	fallback *memory.FallbackStore
	tokens   service.SessionTokenService
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	verifier service.CivicVerifier,
	resolver *AccountResolver,
	fallback *memory.FallbackStore,
	tokens service.SessionTokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		verifier: verifier,
		resolver: resolver,
		fallback: fallback,
		tokens:   tokens,
		logger:   logger,
	}
}

// CivicExchange trades an external civic token for a local session.
// When the durable store is unreachable the account step degrades to an
// in-memory ephemeral account so sign-in keeps working.
func (srv *authService) CivicExchange(ctx context.Context, input *usecase.CivicExchangeInput) (*usecase.CivicExchangeOutput, error) {
	if input == nil || strings.TrimSpace(input.CivicToken) == "" {
		return nil, domainerrors.ErrMissingToken
	}

	claims, err := srv.verifier.Verify(ctx, input.CivicToken)
	if err != nil {
		srv.logger.Warn("Civic token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrAuthInvalid.WithDetails(err.Error())
	}

	if !claims.HasEmail() {
		return nil, domainerrors.ErrClaimsIncomplete
	}

	account, err := srv.resolveAccount(ctx, claims)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokens.Issue(account.ID, entity.CitizenRole)
	if err != nil {
		srv.logger.Error("Failed to issue session token", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue session token")
	}

	return &usecase.CivicExchangeOutput{
		Token: token,
		User: &usecase.ExchangeUser{
			ID:          account.ID,
			FullName:    account.FullName,
			Email:       account.Email,
			PhoneNumber: account.PhoneNumber,
			Role:        entity.CitizenRole,
			IsVerified:  account.IsVerified,
		},
	}, nil
}

func (srv *authService) resolveAccount(ctx context.Context, claims *entity.ExternalClaims) (*entity.Account, error) {
	account, err := srv.resolver.Resolve(ctx, claims)
	if err == nil {
		return account, nil
	}

	if errors.Is(err, repository.ErrStoreUnavailable) {
		srv.logger.Warn("Account store unavailable, using ephemeral account",
			slog.String("subject", claims.Subject), slog.Any("error", err))

		return srv.fallback.GetOrCreate(claims), nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return nil, err
	}

	srv.logger.Error("Account resolution failed", slog.Any("error", err))

	return nil, domainerrors.ErrAuthInvalid.WithDetails(err.Error())
}
