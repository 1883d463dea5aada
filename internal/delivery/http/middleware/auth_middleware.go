// Package middleware contains the echo middleware of the HTTP delivery.
package middleware

import (
	"strings"

	"civicreport/internal/delivery/http/response"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/service"
	"civicreport/internal/infra/auth/session"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyRole      = "role"
)

const sessionCookieName = "token"

// AuthMiddleware provides middleware for session authentication and authorization.
type AuthMiddleware struct {
	tokens service.SessionTokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens service.SessionTokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the session token and stores the caller's identity
// on the request context. All validation failures produce the same 401
// response so clients cannot probe why a token was rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return response.Unauthorized(c,
				domainerrors.ErrSessionRequired.ErrorCode(),
				domainerrors.ErrSessionRequired.Message())
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			// A missing signing secret is a deployment fault, not a bad
			// request.
			if session.IsSecretUnset(err) {
				return response.InternalServerError(c,
					domainerrors.ErrInternalError.ErrorCode(),
					domainerrors.ErrInternalError.Message())
			}

			return response.Unauthorized(c,
				domainerrors.ErrSessionInvalid.ErrorCode(),
				domainerrors.ErrSessionInvalid.Message())
		}

		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated caller's
// role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(string)
			if !ok || role != requiredRole {
				return response.Forbidden(c,
					domainerrors.ErrForbidden.ErrorCode(),
					"Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

// bearerPrefix is matched case-insensitively; a header without it is
// treated as the bare token value.
const bearerPrefix = "Bearer "

// extractToken resolves the session token from the request. The Authorization
// header wins, carrying either "Bearer <token>" or a raw token value, then
// the session cookie, then the query string.
func extractToken(c echo.Context) string {
	authHeader := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if authHeader != "" {
		if len(authHeader) >= len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(authHeader[len(bearerPrefix):])
		}

		return authHeader
	}

	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return c.QueryParam(sessionCookieName)
}
