package filters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseView(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    View
		wantErr bool
	}{
		{name: "affected clusters", raw: "affectedClusters", want: ViewAffectedClusters},
		{name: "recs list", raw: "recsList", want: ViewRecsList},
		{name: "clusters list", raw: "clustersList", want: ViewClustersList},
		{name: "cluster rules", raw: "clusterRules", want: ViewClusterRules},
		{name: "surrounding whitespace", raw: "  recsList\n", want: ViewRecsList},
		{name: "wrong case", raw: "RecsList", wantErr: true},
		{name: "unknown", raw: "dashboard", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseView(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidView))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewsAreValid(t *testing.T) {
	views := Views()
	require.Len(t, views, 4)
	for _, v := range views {
		assert.True(t, v.IsValid(), v.String())
	}
	assert.False(t, View("other").IsValid())
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortDirection
		wantErr bool
	}{
		{raw: "", want: ""},
		{raw: "asc", want: SortAsc},
		{raw: "ascending", want: SortAsc},
		{raw: "DESC", want: SortDesc},
		{raw: "descending", want: SortDesc},
		{raw: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSortDirection(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
