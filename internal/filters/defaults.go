package filters

// DefaultLimit is the page size every paged view starts with.
const DefaultLimit = 50

// Column identifiers stored in State.SortIndex.
const (
	AffectedClustersColumnName     = 1
	AffectedClustersColumnVersion  = 2
	AffectedClustersColumnLastSeen = 3

	RecsColumnName      = 1
	RecsColumnModified  = 2
	RecsColumnCategory  = 3
	RecsColumnTotalRisk = 4
	RecsColumnClusters  = 5

	ClustersColumnName            = 0
	ClustersColumnVersion         = 1
	ClustersColumnRecommendations = 2
	ClustersColumnCritical        = 3
	ClustersColumnImportant       = 4
	ClustersColumnModerate        = 5
	ClustersColumnLow             = 6
	ClustersColumnLastSeen        = 7

	// ClusterRulesColumnTotalRisk sorts the rules of a cluster by total risk.
	ClusterRulesColumnTotalRisk = -1
)

// Compiled-in default records, one per view. They are never handed out
// directly; Default returns copies.
var (
	affectedClustersDefault = State{
		Limit:     Int(DefaultLimit),
		Offset:    Int(0),
		Text:      "",
		SortIndex: Int(AffectedClustersColumnLastSeen),
		Version:   []string{},
	}

	recsListDefault = State{
		Limit:         Int(DefaultLimit),
		Offset:        Int(0),
		Impacting:     []string{"true"},
		SortIndex:     Int(RecsColumnTotalRisk),
		SortDirection: SortDesc,
		RuleStatus:    RuleStatusEnabled,
	}

	clustersListDefault = State{
		Limit:         Int(DefaultLimit),
		Offset:        Int(0),
		Hits:          []string{"all"},
		SortIndex:     Int(ClustersColumnLastSeen),
		SortDirection: SortDesc,
		Text:          "",
		Version:       []string{},
	}

	clusterRulesDefault = State{
		SortIndex:     Int(ClusterRulesColumnTotalRisk),
		SortDirection: SortDesc,
		Text:          "",
	}
)

// Default returns the compiled-in default record for view.
func Default(view View) (State, error) {
	switch view {
	case ViewAffectedClusters:
		return affectedClustersDefault.Clone(), nil
	case ViewRecsList:
		return recsListDefault.Clone(), nil
	case ViewClustersList:
		return clustersListDefault.Clone(), nil
	case ViewClusterRules:
		return clusterRulesDefault.Clone(), nil
	default:
		return State{}, invalidView(view)
	}
}

// Defaults returns a snapshot holding the default record of every view.
func Defaults() Snapshot {
	snap := make(Snapshot, len(Views()))
	for _, v := range Views() {
		snap[v], _ = Default(v)
	}
	return snap
}
