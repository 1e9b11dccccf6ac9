// Package filters holds the filter state of the advisor list and detail views.
package filters

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidView is returned when a view name is not one of the known views.
var ErrInvalidView = errors.New("invalid view")

// View identifies one UI context that owns its own filter state.
type View string

const (
	// ViewAffectedClusters is the single recommendation page listing affected clusters.
	ViewAffectedClusters View = "affectedClusters"

	// ViewRecsList is the recommendations list page.
	ViewRecsList View = "recsList"

	// ViewClustersList is the clusters list page.
	ViewClustersList View = "clustersList"

	// ViewClusterRules is the single cluster page listing its rules.
	ViewClusterRules View = "clusterRules"
)

// Views returns every known view in a stable order.
func Views() []View {
	return []View{
		ViewAffectedClusters,
		ViewRecsList,
		ViewClustersList,
		ViewClusterRules,
	}
}

// IsValid returns whether the view is one of the supported values.
func (v View) IsValid() bool {
	switch v {
	case ViewAffectedClusters, ViewRecsList, ViewClustersList, ViewClusterRules:
		return true
	default:
		return false
	}
}

// String returns the string representation of the view.
func (v View) String() string {
	return string(v)
}

// ParseView converts raw input into a View.
// Matching is exact after trimming surrounding whitespace.
func ParseView(raw string) (View, error) {
	v := View(strings.TrimSpace(raw))
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidView, raw)
	}
	return v, nil
}
