package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// EnvAuthTokenSecret overrides the JWT signing secret.
	EnvAuthTokenSecret = "AUTH_TOKEN_SECRET"

	// EnvAuthTokenTTL overrides the access token lifetime.
	EnvAuthTokenTTL = "AUTH_TOKEN_TTL"

	// EnvAuthCookieName overrides the session cookie name.
	EnvAuthCookieName = "AUTH_COOKIE_NAME"
)

// AuthConfig contains token issuance and session cookie configuration.
type AuthConfig struct {
	TokenSecret string `toml:"token_secret"`
	TokenTTL    string `toml:"token_ttl"`
	CookieName  string `toml:"cookie_name"`
}

// TokenTTLDuration parses and returns the token lifetime as a time.Duration.
func (c *AuthConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the auth configuration.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.TokenSecret != "" {
		c.TokenSecret = overlay.TokenSecret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "12h"
	}
	if c.CookieName == "" {
		c.CookieName = "catalog_session"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthTokenSecret); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv(EnvAuthCookieName); v != "" {
		c.CookieName = v
	}
}

func (c *AuthConfig) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret required")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	return nil
}
