package intent

// Intent is the result of dietary classification for a single query.
// It is computed fresh per query and never persisted beyond the turn.
type Intent struct {
	Type       string   `json:"type"`       // "vegetarian", "vegan", ... or "none"
	Confidence float64  `json:"confidence"` // 0.0-1.0, fixed per category
	Keywords   []string `json:"keywords"`   // The keywords/phrases that triggered the match
}

// IntentNone is the type tag returned when no category matched.
const IntentNone = "none"

// None returns the zero-match intent.
func None() Intent {
	return Intent{Type: IntentNone, Confidence: 0, Keywords: []string{}}
}

// Boost is one general-intent boost signal attached to a classification result.
// The scoring engine multiplies Factor by Confidence for candidates that hit
// any of the boost keywords.
type Boost struct {
	Name       string   `json:"name"`
	Keywords   []string `json:"keywords"`
	Factor     float64  `json:"factor"`
	Confidence float64  `json:"confidence"`
}

// GeneralResult is the outcome of general-purpose intent classification.
type GeneralResult struct {
	Primary       string  `json:"primary"`    // Winning category or "none"
	Confidence    float64 `json:"confidence"` // Fixed per-category confidence
	Boosts        []Boost `json:"boosts"`     // One entry per qualifying category
	TimeSensitive bool    `json:"time_sensitive"`
	HoursRelated  bool    `json:"hours_related"`
}

// category is one row of an intent vocabulary table. Keyword hits weigh 1,
// phrase hits weigh 2. Confidence is a fixed per-category constant; hit count
// only decides whether the category qualifies as a candidate.
type category struct {
	name       string
	confidence float64
	keywords   []string
	phrases    []string
}

// minConfidence is the floor a category constant must exceed to qualify.
const minConfidence = 0.1

// match returns the weighted hit score and the matched terms for a
// lower-cased query.
func (c category) match(query string) (int, []string) {
	score := 0
	var matched []string
	for _, kw := range c.keywords {
		if containsWord(query, kw) {
			score++
			matched = append(matched, kw)
		}
	}
	for _, ph := range c.phrases {
		if containsPhrase(query, ph) {
			score += 2
			matched = append(matched, ph)
		}
	}
	return score, matched
}

// classify runs the shared winner-selection over a category table.
// The winner is the qualifying category with the highest base confidence;
// ties keep the first declared entry.
func classify(query string, table []category) (category, []string, bool) {
	var winner category
	var winnerTerms []string
	found := false

	for _, cat := range table {
		score, terms := cat.match(query)
		if score == 0 || cat.confidence <= minConfidence {
			continue
		}
		if !found || cat.confidence > winner.confidence {
			winner = cat
			winnerTerms = terms
			found = true
		}
	}
	return winner, winnerTerms, found
}
