// Package config loads client configuration from the environment and
// the chatdocs dotenv file (~/.chatdocs/.env). Process environment
// variables win over dotenv values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBaseURL = "CHATDOCS_BASE_URL"
	EnvSession = "CHATDOCS_SESSION"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config holds the client configuration. It is built once at startup
// and passed explicitly to the orchestrating layers; nothing reads the
// environment after Load returns.
type Config struct {
	// BaseURL is the chatdocs backend base URL.
	BaseURL string

	// SessionCookie is the ambient session credential attached to
	// every request (the backend's session cookie value).
	SessionCookie string

	// StateDir is where the client keeps its navigation statefile.
	StateDir string
}

// Dir returns the chatdocs state directory (~/.chatdocs), creating it
// when missing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".chatdocs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating state directory: %w", err)
	}
	return dir, nil
}

// Load builds the configuration from the environment, falling back to
// ~/.chatdocs/.env for unset keys.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	// godotenv never overwrites variables already set in the process
	// environment, which gives env-over-dotenv precedence for free.
	dotenv := filepath.Join(dir, ".env")
	if _, statErr := os.Stat(dotenv); statErr == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}

	cfg := &Config{
		BaseURL:       os.Getenv(EnvBaseURL),
		SessionCookie: os.Getenv(EnvSession),
		StateDir:      dir,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}
