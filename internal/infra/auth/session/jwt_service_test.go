package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport/config"
	"civicreport/internal/domain/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = secret

	svc, ok := NewJWTService(cfg, testLogger()).(*jwtService)
	require.True(t, ok)

	return svc
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestService(t, "test_session_secret_very_long_for_testing")

	token, err := svc.Issue("account-1", entity.CitizenRole)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.AccountID)
	assert.Equal(t, entity.CitizenRole, claims.Role)
}

func TestJWTService_ExpiryWindow(t *testing.T) {
	svc := newTestService(t, "test_session_secret_very_long_for_testing")

	// A token issued 23h59m ago is still inside the 24h window.
	fresh, err := svc.issueAt("account-1", entity.CitizenRole, time.Now().Add(-(23*time.Hour + 59*time.Minute)))
	require.NoError(t, err)
	_, err = svc.Validate(fresh)
	assert.NoError(t, err)

	// A token issued 24h01m ago is past it.
	stale, err := svc.issueAt("account-1", entity.CitizenRole, time.Now().Add(-(24*time.Hour + time.Minute)))
	require.NoError(t, err)
	_, err = svc.Validate(stale)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := newTestService(t, "secret-one")
	validator := newTestService(t, "secret-two")

	token, err := issuer.Issue("account-1", entity.CitizenRole)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService(t, "test_session_secret_very_long_for_testing")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(raw)
		assert.Error(t, err, "token %q", raw)
	}
}

func TestJWTService_DevFallbackIssuesButRefusesValidation(t *testing.T) {
	svc := newTestService(t, "")

	// Issuance still works, signed with the development fallback secret.
	token, err := svc.Issue("account-1", entity.CitizenRole)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Validation without an explicit secret is a misconfiguration, not an
	// invalid token.
	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, IsSecretUnset(err))
}
