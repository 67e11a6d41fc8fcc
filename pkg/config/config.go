package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the credentials and settings for the Salesforce REST API.
type Config struct {
	AuthURL      string
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	GrantType    string
	APIVersion   float64
	Timeout      time.Duration
}

const (
	defaultAPIVersion = 47.0
	defaultGrantType  = "password"
	defaultTimeout    = 30 * time.Second
)

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		AuthURL:      os.Getenv("SF_AUTH_URL"),
		Username:     os.Getenv("SF_USERNAME"),
		Password:     os.Getenv("SF_PASSWORD"),
		ClientID:     os.Getenv("SF_CLIENT_ID"),
		ClientSecret: os.Getenv("SF_CLIENT_SECRET"),
		GrantType:    os.Getenv("SF_GRANT_TYPE"),
		APIVersion:   defaultAPIVersion,
		Timeout:      defaultTimeout,
	}

	if v := os.Getenv("SF_API_VERSION"); v != "" {
		version, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SF_API_VERSION is not a valid version number: %w", err)
		}
		cfg.APIVersion = version
	}

	if v := os.Getenv("SF_REQUEST_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SF_REQUEST_TIMEOUT is not a valid duration: %w", err)
		}
		cfg.Timeout = timeout
	}

	if cfg.GrantType == "" {
		cfg.GrantType = defaultGrantType
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AuthURL == "" {
		return fmt.Errorf("SF_AUTH_URL is required")
	}
	if c.Username == "" {
		return fmt.Errorf("SF_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("SF_PASSWORD is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("SF_CLIENT_ID is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("SF_CLIENT_SECRET is required")
	}
	return nil
}
