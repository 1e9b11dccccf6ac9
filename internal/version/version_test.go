package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()

	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
	Version, Commit, Date = version, commit, date
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{"development without commit", "development", "unknown", "development"},
		{"release with commit", "1.0.0", "abc1234", "1.0.0+abc1234"},
		{"empty commit", "0.5.0", "", "0.5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, "unknown")
			assert.Equal(t, tt.expected, String())
		})
	}
}

func TestGet(t *testing.T) {
	withBuildInfo(t, "1.2.3", "deadbee", "2026-10-01")

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "deadbee", info.Commit)
	assert.Equal(t, "2026-10-01", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
