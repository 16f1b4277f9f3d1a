// Package config loads client settings from a YAML document.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/ghkit/transport"
)

// Settings mirrors the YAML client-settings document. Unknown keys
// are ignored.
type Settings struct {
	// Token is the optional bearer token.
	Token string `yaml:"token"`

	// BaseURL overrides the API host.
	BaseURL string `yaml:"base_url"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds each request (e.g. "30s").
	Timeout time.Duration `yaml:"timeout"`

	// Retry bounds the transient-failure retry loop.
	Retry RetrySettings `yaml:"retry"`
}

// RetrySettings mirrors the retry subsection.
type RetrySettings struct {
	MaxAttempts int           `yaml:"max_attempts"`
	MinWait     time.Duration `yaml:"min_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
}

// Load reads and parses the settings file at path.
func Load(path string) (Settings, error) {
	const errCtx = "loading settings"

	raw, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Settings{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return Parse(raw)
}

// Parse decodes a YAML settings document.
func Parse(raw []byte) (Settings, error) {
	const errCtx = "parsing settings"

	var st Settings

	if err := yaml.Unmarshal(raw, &st); err != nil {
		return Settings{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return st, nil
}

// Transport converts the settings into a transport.Config.
func (s Settings) Transport() transport.Config {
	return transport.Config{
		Token:     s.Token,
		BaseURL:   s.BaseURL,
		UserAgent: s.UserAgent,
		Timeout:   s.Timeout,
		Retry: transport.RetryPolicy{
			MaxAttempts: s.Retry.MaxAttempts,
			MinWait:     s.Retry.MinWait,
			MaxWait:     s.Retry.MaxWait,
		},
	}
}
