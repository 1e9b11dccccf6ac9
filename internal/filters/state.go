package filters

import (
	"fmt"
	"slices"
	"strings"
)

// SortDirection specifies the sort direction of a view table.
// The empty value means no direction is set.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the direction is set to one of the two supported values.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// String returns the string representation of the sort direction.
func (d SortDirection) String() string {
	return string(d)
}

// ParseSortDirection accepts "asc", "desc", "ascending" and "descending".
// An empty string yields the unset direction.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort direction: %s", raw)
	}
}

// Rule status values used by the recommendations list.
const (
	RuleStatusEnabled  = "enabled"
	RuleStatusDisabled = "disabled"
	RuleStatusAll      = "all"
)

// State is the complete set of filter, sort and paging fields of one view.
//
// Paging and sort fields are pointers so that an undefined value can be told
// apart from zero. Multi-valued fields keep insertion order and may contain
// duplicates.
type State struct {
	Limit         *int          `json:"limit,omitempty" toml:"limit,omitempty"`
	Offset        *int          `json:"offset,omitempty" toml:"offset,omitempty"`
	SortIndex     *int          `json:"sortIndex,omitempty" toml:"sortIndex,omitempty"`
	SortDirection SortDirection `json:"sortDirection,omitempty" toml:"sortDirection,omitempty"`

	// Text is the free-text search.
	Text string `json:"text,omitempty" toml:"text,omitempty"`
	// Version selects cluster versions.
	Version []string `json:"version,omitempty" toml:"version,omitempty"`
	// Impacting selects whether a recommendation impacts any cluster.
	Impacting []string `json:"impacting,omitempty" toml:"impacting,omitempty"`
	// Hits selects clusters by total risk of their hits.
	Hits []string `json:"hits,omitempty" toml:"hits,omitempty"`
	// RuleStatus selects enabled, disabled or all rules.
	RuleStatus string `json:"rule_status,omitempty" toml:"rule_status,omitempty"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Limit = cloneInt(s.Limit)
	out.Offset = cloneInt(s.Offset)
	out.SortIndex = cloneInt(s.SortIndex)
	out.Version = slices.Clone(s.Version)
	out.Impacting = slices.Clone(s.Impacting)
	out.Hits = slices.Clone(s.Hits)
	return out
}

// Equal reports whether two states hold the same values.
// A nil slice and an empty slice are considered equal.
func (s State) Equal(other State) bool {
	return intPtrEqual(s.Limit, other.Limit) &&
		intPtrEqual(s.Offset, other.Offset) &&
		intPtrEqual(s.SortIndex, other.SortIndex) &&
		s.SortDirection == other.SortDirection &&
		s.Text == other.Text &&
		slices.Equal(s.Version, other.Version) &&
		slices.Equal(s.Impacting, other.Impacting) &&
		slices.Equal(s.Hits, other.Hits) &&
		s.RuleStatus == other.RuleStatus
}

// NormalizeSortDirection rewrites SortDirection to its canonical value,
// accepting every spelling ParseSortDirection accepts.
func (s *State) NormalizeSortDirection() error {
	dir, err := ParseSortDirection(string(s.SortDirection))
	if err != nil {
		return err
	}
	s.SortDirection = dir
	return nil
}

// Int returns a pointer to n. It is used to build literal states.
func Int(n int) *int {
	return &n
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
