package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"mongo": map[string]any{
			"operationTimeout": "5s",
		},
		"civicAuth": map[string]any{
			"jwksUrl": "",
		},
		"secretKey": map[string]any{
			"session": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "MONGO_OPERATIONTIMEOUT", want: "mongo.operationTimeout"},
		{envKey: "CIVICAUTH_JWKSURL", want: "civicAuth.jwksUrl"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.CivicAuth.Mode != CivicModeVerify {
		t.Fatalf("default civic auth mode = %q, want %q", cfg.CivicAuth.Mode, CivicModeVerify)
	}
	if cfg.CivicAuth.FetchTimeout <= 0 {
		t.Fatal("default JWKS fetch timeout must be positive")
	}
}
