package civic

import (
	"log/slog"

	"github.com/pkg/errors"

	"civicreport/config"
	"civicreport/internal/domain/service"
)

// NewVerifier selects the CivicVerifier implementation from configuration.
// When the mode is "verify" (the default), the decode-only verifier is
// unreachable; it is constructed only for an explicit "decode" mode.
func NewVerifier(cfg *config.Config, logger *slog.Logger) (service.CivicVerifier, error) {
	if cfg.CivicAuth == nil {
		return nil, errors.New("civic auth configuration is missing")
	}

	switch cfg.CivicAuth.Mode {
	case config.CivicModeVerify, "":
		return NewJWKSVerifier(cfg.CivicAuth, logger)
	case config.CivicModeDecode:
		return NewDecodeVerifier(logger), nil
	default:
		return nil, errors.Errorf("unknown civic auth mode: %s", cfg.CivicAuth.Mode)
	}
}
