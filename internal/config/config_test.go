package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "flowdeck", "config.yaml"), Path())
}

func TestLoadMissingFileIsEmptyConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.Model)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := &Config{APIKey: "k-123", Model: "gemini-2.5-flash", Brief: "notes/campaign.md"}
	require.NoError(t, in.Save())

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p := filepath.Join(dir, "flowdeck", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("api_key: [unterminated"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestCredentialEnvBeatsFile(t *testing.T) {
	cfg := &Config{APIKey: "from-file"}

	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.Credential())

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "from-file", cfg.Credential())

	t.Setenv("GEMINI_API_KEY", "   ")
	assert.Equal(t, "from-file", cfg.Credential(), "whitespace-only env value counts as absent")
}

func TestCredentialTrimsFileValue(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := &Config{APIKey: "  padded  "}
	assert.Equal(t, "padded", cfg.Credential())
}
