package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ocp-advisor/filterstate/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("FILTERSTATE_CONFIG_DIR", filepath.Join(tmp, "config"))
	t.Setenv("FILTERSTATE_STATE_DIR", filepath.Join(tmp, "state"))
	config.Load()
	t.Cleanup(func() { _ = ShutdownGlobal() })
	return tmp
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("FILTERSTATE_LOGGING_ENABLED", "true")
	t.Setenv("FILTERSTATE_LOGGING_LEVEL", "warn")
	t.Setenv("FILTERSTATE_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("FILTERSTATE_DEBUG", "true")
	t.Setenv("FILTERSTATE_QUIET", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level, "debug wins over quiet")

	t.Setenv("FILTERSTATE_DEBUG", "false")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("FILTERSTATE_QUIET", "false")
	t.Setenv("FILTERSTATE_LOGGING_LEVEL", "warn")
	config.Load()
	require.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDirUsesStateDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "state", "logs"), dir)
}

func TestInitDisabledReturnsNoop(t *testing.T) {
	setupTest(t)

	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, l)
	require.NoError(t, l.Shutdown())
}

func TestInitWritesJSONWithRedaction(t *testing.T) {
	setupTest(t)
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Level = "debug"
	cfg.Command = "filterstate show"

	l, err := Init(cfg)
	require.NoError(t, err)
	impl := l.(*clogLogger)

	l.With("view", "recsList").Info("filters replaced", "operation", "replace", "auth_token", "abc")
	require.NoError(t, l.Shutdown())

	require.True(t, strings.HasPrefix(filepath.Base(impl.path), logFilePrefix))
	require.Contains(t, impl.path, "filterstate_show")

	data, err := os.ReadFile(impl.path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	require.Equal(t, "filters replaced", entry["msg"])
	require.Equal(t, "recsList", entry["view"])
	require.Equal(t, "replace", entry["operation"])
	require.Equal(t, "[REDACTED]", entry["auth_token"])
}

func TestInitGlobalMirrorsLogFile(t *testing.T) {
	setupTest(t)
	t.Setenv("FILTERSTATE_LOGGING_ENABLED", "true")
	config.Load()

	require.NoError(t, InitGlobal())
	require.NotEmpty(t, CurrentLogFile())
	GetGlobal().Info("hello")

	require.NoError(t, ShutdownGlobal())
	require.Empty(t, CurrentLogFile())
	require.IsType(t, noopLogger{}, GetGlobal())
}

func TestJSONLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSON(&buf, "warn")

	l.Info("skipped")
	l.Warn("kept", "view", "clusterRules")

	out := buf.String()
	require.NotContains(t, out, "skipped")
	require.Contains(t, out, "kept")
	require.Contains(t, out, "clusterRules")
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf, "info").With("component", "server")

	l.Debug("hidden")
	l.Info("http request", "path", "/healthz", "token", "secret-value")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "filterstate")
	require.Contains(t, out, "http request")
	require.Contains(t, out, "component=server")
	require.Contains(t, out, "path=/healthz")
	require.NotContains(t, out, "secret-value")
	require.NoError(t, l.Shutdown())
}

func TestRotateKeepsNewestFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, logFilePrefix+string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(p, []byte("x"), 0600))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	other := filepath.Join(dir, "unrelated.log")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0600))

	require.NoError(t, rotate(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{logFilePrefix + "d.log", logFilePrefix + "e.log", "unrelated.log"}, names)
}

func TestRedactor(t *testing.T) {
	r := newRedactor()
	tests := []struct {
		key       string
		sensitive bool
	}{
		{"password", true},
		{"db_password", true},
		{"API-Token", true},
		{"view", false},
		{"sortIndex", false},
		{"keyboard", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.sensitive, r.isSensitive(tt.key), tt.key)
	}

	out := r.redact([]any{"view", "recsList", "secret", "s3cr3t", "odd"})
	require.Equal(t, []any{"view", "recsList", "secret", "[REDACTED]", "odd"}, out)
}
