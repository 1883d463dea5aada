package civic

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"civicreport/config"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/entity"
	"civicreport/internal/domain/service"
)

// jwksVerifier validates civic tokens cryptographically against the
// provider's published key set, resolved by key id. Only RS256 is accepted.
type jwksVerifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
	logger   *slog.Logger
}

// NewJWKSVerifier constructs the verifying-mode CivicVerifier. It performs an
// initial key-set fetch and keeps the set refreshed in the background.
func NewJWKSVerifier(cfg *config.CivicAuthConfig, logger *slog.Logger) (service.CivicVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("civic auth: jwksUrl must be configured in verify mode")
	}

	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		Client:            &http.Client{Timeout: fetchTimeout},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    fetchTimeout,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("Civic JWKS refresh failed", "error", err)
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch civic JWKS")
	}

	return &jwksVerifier{
		jwks:     jwks,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		logger:   logger,
	}, nil
}

// Verify parses and cryptographically verifies rawToken.
func (v *jwksVerifier) Verify(_ context.Context, rawToken string) (*entity.ExternalClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, v.jwks.Keyfunc, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domainerrors.ErrTokenInvalid.WithDetails(err.Error())
		}

		v.logger.Warn("Civic token rejected", "error", err)

		return nil, domainerrors.ErrTokenUntrusted.WithDetails(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrTokenUntrusted
	}

	return claimsFromToken(claims), nil
}
