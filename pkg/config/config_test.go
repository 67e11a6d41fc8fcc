package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SF_AUTH_URL", "https://test.salesforce.com/services/oauth2/token")
	t.Setenv("SF_USERNAME", "user@example.com")
	t.Setenv("SF_PASSWORD", "secret")
	t.Setenv("SF_CLIENT_ID", "client-id")
	t.Setenv("SF_CLIENT_SECRET", "client-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIVersion != 47.0 {
		t.Errorf("expected default API version 47.0, got %v", cfg.APIVersion)
	}
	if cfg.GrantType != "password" {
		t.Errorf("expected default grant type password, got %q", cfg.GrantType)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SF_API_VERSION", "52.0")
	t.Setenv("SF_REQUEST_TIMEOUT", "10s")
	t.Setenv("SF_GRANT_TYPE", "client_credentials")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIVersion != 52.0 {
		t.Errorf("expected API version 52.0, got %v", cfg.APIVersion)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.GrantType != "client_credentials" {
		t.Errorf("expected grant type client_credentials, got %q", cfg.GrantType)
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SF_API_VERSION", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SF_API_VERSION")
	}
}

func TestValidateNamesMissingVariable(t *testing.T) {
	tt := []struct {
		name    string
		mutate  func(*Config)
		missing string
	}{
		{name: "auth url", mutate: func(c *Config) { c.AuthURL = "" }, missing: "SF_AUTH_URL"},
		{name: "username", mutate: func(c *Config) { c.Username = "" }, missing: "SF_USERNAME"},
		{name: "password", mutate: func(c *Config) { c.Password = "" }, missing: "SF_PASSWORD"},
		{name: "client id", mutate: func(c *Config) { c.ClientID = "" }, missing: "SF_CLIENT_ID"},
		{name: "client secret", mutate: func(c *Config) { c.ClientSecret = "" }, missing: "SF_CLIENT_SECRET"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				AuthURL:      "https://test.salesforce.com",
				Username:     "user@example.com",
				Password:     "secret",
				ClientID:     "client-id",
				ClientSecret: "client-secret",
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.missing) {
				t.Errorf("expected error naming %s, got %q", tc.missing, err)
			}
		})
	}
}
