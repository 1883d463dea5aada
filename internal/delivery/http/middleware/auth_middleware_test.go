package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport/config"
	"civicreport/internal/domain/service"
	"civicreport/internal/infra/auth/session"
	mockService "civicreport/internal/mocks/service"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newAuthContext(t *testing.T, mutate func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/issues", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	c, rec := newAuthContext(t, nil)
	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization token is required")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	tokens.On("Validate", "bad-token").Return(nil, errors.New("token is expired"))

	c, rec := newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer bad-token")
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Clients get the same message whatever the failure cause was.
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_SecretUnsetIsServerFault(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	// Produce the real unset-secret error by validating against a service
	// that was never given a signing secret.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	unconfigured := session.NewJWTService(&config.Config{}, logger)
	_, secretErr := unconfigured.Validate("whatever")
	require.True(t, session.IsSecretUnset(secretErr))

	tokens.On("Validate", "any-token").Return(nil, secretErr)

	c, rec := newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer any-token")
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	tokens.On("Validate", "good-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil)

	c, rec := newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-1", c.Get(ContextKeyAccountID))
	assert.Equal(t, "citizen", c.Get(ContextKeyRole))
}

func TestAuthMiddleware_TokenSourcePrecedence(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	// The Authorization header wins over cookie and query string.
	tokens.On("Validate", "header-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil).Once()

	c, rec := newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
		req.URL.RawQuery = "token=query-token"
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Without a header the cookie is used.
	tokens.On("Validate", "cookie-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil).Once()

	c, rec = newAuthContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
		req.URL.RawQuery = "token=query-token"
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Query string is the last resort.
	tokens.On("Validate", "query-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil).Once()

	c, rec = newAuthContext(t, func(req *http.Request) {
		req.URL.RawQuery = "token=query-token"
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RawAuthorizationHeader(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	// A header carrying the bare token, without the Bearer scheme, is
	// accepted as-is.
	tokens.On("Validate", "raw-session-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil).Once()

	c, rec := newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "raw-session-token")
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-1", c.Get(ContextKeyAccountID))

	// The scheme prefix is matched case-insensitively.
	tokens.On("Validate", "cased-token").
		Return(&service.SessionClaims{AccountID: "acc-1", Role: "citizen"}, nil).Once()

	c, rec = newAuthContext(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "bearer cased-token")
	})
	require.NoError(t, mw.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokens := mockService.NewMockSessionTokenService(t)
	mw := NewAuthMiddleware(tokens)

	c, rec := newAuthContext(t, nil)
	c.Set(ContextKeyRole, "citizen")
	require.NoError(t, mw.RequireRole("citizen")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newAuthContext(t, nil)
	c.Set(ContextKeyRole, "citizen")
	require.NoError(t, mw.RequireRole("admin")(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Missing role information is also a denial.
	c, rec = newAuthContext(t, nil)
	require.NoError(t, mw.RequireRole("citizen")(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
