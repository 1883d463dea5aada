// Package session provides the concrete implementation of the application
// session token service using the JWT standard.
package session

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"civicreport/config"
	"civicreport/internal/domain/service"
)

// devSecret is the issuance fallback used when no session secret is
// configured. Relying on it outside development defeats the purpose of
// signing; the constructor logs loudly when it is in play.
const devSecret = "dev_jwt"

// sessionTTL is the fixed validity window for session tokens.
const sessionTTL = 24 * time.Hour

// errSecretUnset marks validation attempts without an explicitly configured
// secret. The middleware reports it as a server misconfiguration, not as an
// invalid token.
var errSecretUnset = errors.New("session secret is not configured")

// jwtService implements service.SessionTokenService with HS256-signed tokens.
type jwtService struct {
	secret     string
	configured bool
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService. When the configured
// secret is empty, issuance falls back to a fixed development secret and
// validation is refused.
func NewJWTService(cfg *config.Config, logger *slog.Logger) service.SessionTokenService {
	secret := cfg.SecretKey.Session
	configured := secret != ""
	if !configured {
		secret = devSecret
		logger.Warn("Session secret is not configured; signing session tokens with the development fallback secret. Do not use in production.")
	}

	return &jwtService{
		secret:     secret,
		configured: configured,
		now:        time.Now,
	}
}

// Issue creates a signed session token for the given account and role with a
// fixed 24-hour expiry.
func (s *jwtService) Issue(accountID, role string) (string, error) {
	return s.issueAt(accountID, role, s.now())
}

// issueAt is split out so tests can pin the issuance instant.
func (s *jwtService) issueAt(accountID, role string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":   accountID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a session token. Failure
// causes are not distinguished beyond the misconfiguration case.
func (s *jwtService) Validate(tokenString string) (*service.SessionClaims, error) {
	if !s.configured {
		return nil, errSecretUnset
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	accountID, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if accountID == "" || role == "" {
		return nil, errors.New("session token missing identity claims")
	}

	return &service.SessionClaims{AccountID: accountID, Role: role}, nil
}

// IsSecretUnset reports whether err marks a validation attempt without a
// configured secret.
func IsSecretUnset(err error) bool {
	return errors.Is(err, errSecretUnset)
}
