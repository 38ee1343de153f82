package query

import (
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
)

// Resolve maps a follow-up reference onto the previous turn's results.
// While previous is non-empty the result is never empty: an unresolvable or
// out-of-range reference degrades to the first previous result instead of
// failing the turn. A nil reference (follow-up without a concrete target)
// degrades the same way.
func Resolve(ref *Reference, previous []scoring.ScoredCandidate) []scoring.ScoredCandidate {
	if len(previous) == 0 {
		return []scoring.ScoredCandidate{}
	}
	if ref == nil {
		return previous[:1]
	}

	switch ref.Kind {
	case ReferenceOrdinal:
		idx := ref.Index
		if idx < 0 || idx >= len(previous) {
			idx = 0
		}
		return previous[idx : idx+1]

	case ReferenceNamed:
		for _, prev := range previous {
			if matchesTitle(ref.Name, prev.Title) {
				return []scoring.ScoredCandidate{prev}
			}
		}
		return previous[:1]

	case ReferenceAll:
		return previous

	default:
		return previous[:1]
	}
}
