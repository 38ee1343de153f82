package query

import (
	"strings"

	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
)

// SearchType classifies how a query should be retrieved and interpreted.
type SearchType string

const (
	SearchTypeGeneral    SearchType = "general"
	SearchTypeSpecific   SearchType = "specific"
	SearchTypeContextual SearchType = "contextual"
)

// Detection is the outcome of query-type and follow-up analysis for one turn.
type Detection struct {
	SearchType SearchType `json:"search_type"`
	IsFollowUp bool       `json:"is_follow_up"`
	Reference  *Reference `json:"reference,omitempty"`
	Confidence float64    `json:"confidence"`
}

var referenceWords = []string{"that", "this", "it", "the", "there"}
var timeContactWords = []string{
	"open", "opened", "closed", "close", "closes", "closing", "opening",
	"hours", "phone", "address", "contact", "website", "directions",
}

// Detect decides the search type, whether the query is a follow-up, and what
// it refers to. The decision policy is a strict priority cascade; the first
// matching rule wins and later rules never override it.
func Detect(rawQuery string, previous []scoring.ScoredCandidate) Detection {
	query := strings.ToLower(strings.TrimSpace(rawQuery))

	// Rule 1: without previous results there is no follow-up, full stop.
	if len(previous) == 0 {
		return Detection{
			SearchType: classifyNewSearch(query),
			IsFollowUp: false,
			Confidence: 0.8,
		}
	}

	// Rule 2: ordinal/positional wording targets a position in the list.
	if idx, ok := parseOrdinal(query, len(previous)); ok {
		return Detection{
			SearchType: SearchTypeSpecific,
			IsFollowUp: true,
			Reference:  &Reference{Kind: ReferenceOrdinal, Index: idx},
			Confidence: 0.95,
		}
	}

	// Rule 3: the query names one of the shown results.
	for i, prev := range previous {
		if matchesTitle(query, prev.Title) {
			return Detection{
				SearchType: SearchTypeSpecific,
				IsFollowUp: true,
				Reference:  &Reference{Kind: ReferenceNamed, Index: i, Name: prev.Title},
				Confidence: 0.9,
			}
		}
	}

	// Rule 3b: wording that spans the whole previous set.
	if referencesAll(query) {
		return Detection{
			SearchType: SearchTypeContextual,
			IsFollowUp: true,
			Reference:  &Reference{Kind: ReferenceAll},
			Confidence: 0.85,
		}
	}

	// Rule 4: a bare reference word plus a time/contact keyword implies the
	// most recent result even without a concrete target.
	if containsAnyWord(query, referenceWords) && containsAnyWord(query, timeContactWords) {
		return Detection{
			SearchType: SearchTypeContextual,
			IsFollowUp: true,
			Reference:  nil, // resolver defaults to index 0
			Confidence: 0.7,
		}
	}

	// Rule 5: a new search. The search type comes from linguistic cues alone,
	// with one guard: a "specific"-looking query while results are on the
	// table must still be treated as a follow-up (defaulting to the first
	// result), otherwise type and follow-up status would contradict.
	searchType := classifyNewSearch(query)
	if searchType == SearchTypeSpecific {
		return Detection{
			SearchType: SearchTypeSpecific,
			IsFollowUp: true,
			Reference:  nil,
			Confidence: 0.6,
		}
	}
	return Detection{
		SearchType: searchType,
		IsFollowUp: false,
		Confidence: 0.8,
	}
}

var specificLeads = []string{
	"where is", "tell me about", "show me the", "what about the",
	"details of", "details about", "how do i get to",
}

var contextualWords = []string{"also", "instead", "another", "else", "more"}

// classifyNewSearch derives the search type for a self-contained query.
func classifyNewSearch(query string) SearchType {
	for _, lead := range specificLeads {
		if strings.HasPrefix(query, lead) {
			return SearchTypeSpecific
		}
	}
	if strings.Contains(query, "\"") {
		return SearchTypeSpecific
	}
	if containsAnyWord(query, contextualWords) {
		return SearchTypeContextual
	}
	return SearchTypeGeneral
}

func containsAnyWord(query string, words []string) bool {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}
