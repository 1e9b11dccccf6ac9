package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ocp-advisor/filterstate/internal/filters"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := New(context.Background(), Options{Addr: mr.Addr(), Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestNewValidatesAddress(t *testing.T) {
	_, err := New(context.Background(), Options{})
	require.Error(t, err)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), Options{Addr: addr, Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping")
}

func TestSaveUsesPrefixedKey(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Save(context.Background(), filters.ViewRecsList, filters.State{
		Limit:      filters.Int(50),
		RuleStatus: filters.RuleStatusAll,
	}))

	raw, err := mr.Get("filterstate:recsList")
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":50,"rule_status":"all"}`, raw)
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	affected := filters.State{
		Limit:     filters.Int(10),
		Offset:    filters.Int(30),
		SortIndex: filters.Int(2),
		Text:      "node",
		Version:   []string{"4.16"},
	}
	require.NoError(t, s.Save(ctx, filters.ViewAffectedClusters, affected))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, affected, snap[filters.ViewAffectedClusters])
}

func TestLoadIgnoresForeignAndUnknownKeys(t *testing.T) {
	s, mr := newTestStorage(t)
	require.NoError(t, mr.Set("other:recsList", `{"text":"x"}`))
	require.NoError(t, mr.Set("filterstate:legacy", `{}`))
	require.NoError(t, mr.Set("filterstate:clusterRules", `{"sortIndex":-1}`))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, -1, *snap[filters.ViewClusterRules].SortIndex)
}

func TestLoadCorruptValue(t *testing.T) {
	s, mr := newTestStorage(t)
	require.NoError(t, mr.Set("filterstate:recsList", `{broken`))

	_, err := s.Load(context.Background())
	require.Error(t, err)
}

func TestClearOnlyTouchesPrefix(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("unrelated", "keep"))
	require.NoError(t, s.Save(ctx, filters.ViewRecsList, filters.State{}))
	require.NoError(t, s.Save(ctx, filters.ViewClustersList, filters.State{}))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	assert.False(t, mr.Exists("filterstate:recsList"))
	assert.False(t, mr.Exists("filterstate:clustersList"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestCustomPrefixAndSharedClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewWithClient(client, "advisor:filters:")
	require.NoError(t, s.Save(context.Background(), filters.ViewClusterRules, filters.State{Text: "x"}))
	assert.True(t, mr.Exists("advisor:filters:clusterRules"))

	require.NoError(t, s.Close())
	require.NoError(t, client.Ping(context.Background()).Err(), "shared client stays open")
}
