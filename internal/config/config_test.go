package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvSession, "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.SessionCookie)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBaseURL, "https://docs.example.com")
	t.Setenv(EnvSession, "s3ss10n")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", cfg.BaseURL)
	assert.Equal(t, "s3ss10n", cfg.SessionCookie)
}

func TestDir_CreatesStateDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := Dir()

	require.NoError(t, err)
	assert.DirExists(t, dir)
}
