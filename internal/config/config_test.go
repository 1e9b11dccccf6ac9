package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupConfigDirs(t *testing.T) (configDir, stateDir string) {
	t.Helper()
	tmp := t.TempDir()
	configDir = filepath.Join(tmp, "config")
	stateDir = filepath.Join(tmp, "state")
	t.Setenv(EnvPrefix+"CONFIG_DIR", configDir)
	t.Setenv(EnvPrefix+"STATE_DIR", stateDir)
	t.Cleanup(reset)
	return configDir, stateDir
}

func TestLoadAndGet(t *testing.T) {
	setupConfigDirs(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, 120, GetInt("server_rate_limit", 0))
	require.False(t, GetBool("logging_enabled", true))
	require.Equal(t, 5*time.Second, GetDuration("redis_timeout", 0))
}

func TestDerivedStoragePaths(t *testing.T) {
	_, stateDir := setupConfigDirs(t)
	Load()

	require.Equal(t, filepath.Join(stateDir, "filters.db"), Get("sqlite_path", ""))
	require.Equal(t, filepath.Join(stateDir, "filters.toml"), Get("toml_path", ""))
}

func TestExplicitStoragePathWins(t *testing.T) {
	setupConfigDirs(t)
	t.Setenv(EnvPrefix+"SQLITE_PATH", "/tmp/custom.db")
	Load()

	require.Equal(t, "/tmp/custom.db", Get("sqlite_path", ""))
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	configDir, _ := setupConfigDirs(t)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	configFile := filepath.Join(configDir, "config.toml")
	content := `
storage_backend = "toml"
server_rate_limit = 30
output_format = "table"
logging_enabled = true
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv(EnvPrefix+"STORAGE_BACKEND", "redis")

	Load()

	require.Equal(t, "redis", Get("storage_backend", ""), "environment should override config file")
	require.Equal(t, 30, GetInt("server_rate_limit", 0))
	require.Equal(t, "table", Get("output_format", ""))
	require.True(t, GetBool("logging_enabled", false))
}

func TestExplicitConfigPath(t *testing.T) {
	setupConfigDirs(t)
	configFile := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`redis_prefix = "advisor:"`), 0644))
	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)

	Load()

	require.Equal(t, "advisor:", Get("redis_prefix", ""))
	_, err := os.Stat(filepath.Join(Get("config_dir", ""), "config.toml"))
	require.NoError(t, err, "sample config should still be created in config_dir")
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfigDirs(t)
	t.Setenv(EnvPrefix+"STORAGE_BACKEND", "postgres")
	t.Setenv(EnvPrefix+"SERVER_RATE_LIMIT", "-3")
	t.Setenv(EnvPrefix+"LOGGING_ENABLED", "maybe")
	t.Setenv(EnvPrefix+"REDIS_TIMEOUT", "soon")

	Load()

	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, "120", Get("server_rate_limit", ""))
	require.Equal(t, "false", Get("logging_enabled", ""))
	require.Equal(t, "5s", Get("redis_timeout", ""))
}

func TestNormalization(t *testing.T) {
	setupConfigDirs(t)
	t.Setenv(EnvPrefix+"OUTPUT_FORMAT", "TABLE")
	t.Setenv(EnvPrefix+"DEBUG", "yes")
	t.Setenv(EnvPrefix+"SERVER_RATE_LIMIT", "0")

	Load()

	require.Equal(t, "table", Get("output_format", ""))
	require.Equal(t, "true", Get("debug", ""))
	require.Equal(t, 0, GetInt("server_rate_limit", 99))
}

func TestSet(t *testing.T) {
	setupConfigDirs(t)
	Load()

	Set("server_addr", ":9999")
	require.Equal(t, ":9999", Get("server_addr", ""))
}

func TestCoerceConfigValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
		ok   bool
	}{
		{in: "x", want: "x", ok: true},
		{in: 3, want: "3", ok: true},
		{in: int64(7), want: "7", ok: true},
		{in: 1.5, want: "1.5", ok: true},
		{in: true, want: "true", ok: true},
		{in: []string{"a"}, ok: false},
	}
	for _, tt := range tests {
		got, ok := coerceConfigValue(tt.in)
		require.Equal(t, tt.ok, ok)
		require.Equal(t, tt.want, got)
	}
}
