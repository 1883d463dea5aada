package civic

import (
	"context"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/entity"
	"civicreport/internal/domain/service"
)

// decodeVerifier extracts claims WITHOUT verifying any signature.
//
// This is NOT secure: any caller can forge a token that this verifier
// accepts. It exists as an explicit fallback for development and for
// environments where the provider's key set is unreachable, and must never
// be selected implicitly.
type decodeVerifier struct {
	logger *slog.Logger
}

// NewDecodeVerifier constructs the insecure decode-only CivicVerifier.
func NewDecodeVerifier(logger *slog.Logger) service.CivicVerifier {
	logger.Warn("Civic token verification is in decode-only mode; token signatures are NOT verified. Do not use in production.")

	return &decodeVerifier{logger: logger}
}

// Verify parses the token structure and extracts claims without any
// signature check. A token that cannot be decoded fails with ErrTokenInvalid.
func (v *decodeVerifier) Verify(_ context.Context, rawToken string) (*entity.ExternalClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, domainerrors.ErrTokenInvalid.WithDetails(err.Error())
	}

	v.logger.Warn("Accepted civic token without signature verification (decode-only mode)")

	return claimsFromToken(claims), nil
}
