package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOUNGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", cfg.Server.URL)
	require.Equal(t, "LOUNGE_ID_TOKEN", cfg.Identity.TokenEnv)
	require.False(t, cfg.Presence.Enabled)
	require.Equal(t, 15, cfg.Presence.IntervalSeconds)
	require.NotEmpty(t, cfg.Session.StorePath)
	require.NotEmpty(t, cfg.Session.JournalPath)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
url = "https://lounge.example.com"

[presence]
enabled = true
interval_seconds = 5

[session]
store_path = "/tmp/lounge/session.json"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("LOUNGE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://lounge.example.com", cfg.Server.URL)
	require.True(t, cfg.Presence.Enabled)
	require.Equal(t, 5, cfg.Presence.IntervalSeconds)
	require.Equal(t, "/tmp/lounge/session.json", cfg.Session.StorePath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nurl = \"https://file.example.com\"\n"), 0o600))
	t.Setenv("LOUNGE_CONFIG", path)
	t.Setenv("LOUNGE_SERVER_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.Server.URL)
}

func TestResolveToken(t *testing.T) {
	t.Setenv("LOUNGE_ID_TOKEN", "from-env")

	cfg := Config{Identity: IdentityConfig{TokenEnv: "LOUNGE_ID_TOKEN"}}
	require.Equal(t, "from-env", cfg.ResolveToken())

	// an explicit token wins over the env var
	cfg.Identity.Token = "  from-config  "
	require.Equal(t, "from-config", cfg.ResolveToken())

	cfg = Config{}
	require.Empty(t, cfg.ResolveToken())
}
