package tomlfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "state", "filters.toml"))
	require.NoError(t, err)
	return s
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStorage(t)

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	clusters := filters.State{
		Limit:         filters.Int(20),
		Offset:        filters.Int(0),
		Hits:          []string{"critical", "important"},
		SortIndex:     filters.Int(filters.ClustersColumnLastSeen),
		SortDirection: filters.SortDesc,
		Text:          "prod",
		Version:       []string{},
	}
	require.NoError(t, s.Save(ctx, filters.ViewClustersList, clusters))
	require.NoError(t, s.Save(ctx, filters.ViewClusterRules, filters.State{SortIndex: filters.Int(-1)}))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.True(t, clusters.Equal(snap[filters.ViewClustersList]))
	require.NotNil(t, snap[filters.ViewClustersList].Offset)
	assert.Equal(t, 0, *snap[filters.ViewClustersList].Offset)
	assert.Equal(t, -1, *snap[filters.ViewClusterRules].SortIndex)
}

func TestFileIsReadableTOML(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.Save(context.Background(), filters.ViewRecsList, filters.State{
		Limit:      filters.Int(50),
		RuleStatus: filters.RuleStatusEnabled,
	}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[recsList]")
	assert.Contains(t, content, "limit = 50")
	assert.Regexp(t, `rule_status = ['"]enabled['"]`, content)
}

func TestLoadHandEditedFile(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	content := `
[affectedClusters]
limit = 10
text = "edge"
version = ["4.15", "4.16"]

[unknownView]
limit = 1
`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 1)
	state := snap[filters.ViewAffectedClusters]
	assert.Equal(t, 10, *state.Limit)
	assert.Nil(t, state.Offset)
	assert.Equal(t, "edge", state.Text)
	assert.Equal(t, []string{"4.15", "4.16"}, state.Version)
}

func TestLoadInvalidFile(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("invalid = ["), 0o644))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSaveKeepsOtherViews(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, filters.ViewRecsList, filters.State{Text: "a"}))
	require.NoError(t, s.Save(ctx, filters.ViewAffectedClusters, filters.State{Text: "b"}))
	require.NoError(t, s.Save(ctx, filters.ViewRecsList, filters.State{Text: "c"}))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", snap[filters.ViewRecsList].Text)
	assert.Equal(t, "b", snap[filters.ViewAffectedClusters].Text)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestClear(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx), "clearing a missing file is fine")
	require.NoError(t, s.Save(ctx, filters.ViewRecsList, filters.State{}))
	require.NoError(t, s.Clear(ctx))

	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestCanceledContext(t *testing.T) {
	s := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Save(ctx, filters.ViewRecsList, filters.State{}), context.Canceled)
	_, err := s.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
