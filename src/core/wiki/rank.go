package wiki

import "sort"

// ResultRank orders a result for UI display. Installation-focused queries put
// installation videos first, then any tutorial; otherwise articles lead,
// followed by installation videos and the remaining tutorials.
func ResultRank(r Result, installIntent bool) int {
	if installIntent {
		switch {
		case r.Subtype == SubtypeInstallation:
			return 0
		case r.Type == KindTutorial:
			return 1
		default:
			return 2
		}
	}

	switch {
	case r.Type == KindArticle:
		return 0
	case r.Subtype == SubtypeInstallation:
		return 1
	case r.Type == KindTutorial:
		return 2
	default:
		return 3
	}
}

// SortForDisplay stably sorts a combined result list by ResultRank, so ties
// keep the aggregator's phase order.
func SortForDisplay(results []Result, query string) []Result {
	installIntent := MentionsInstallation(query)
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(a, b int) bool {
		return ResultRank(sorted[a], installIntent) < ResultRank(sorted[b], installIntent)
	})
	return sorted
}
