package intent

// generalCategory extends the vocabulary row with the boost factor the
// scoring engine applies to candidates hitting the category keywords.
type generalCategory struct {
	category
	boostFactor float64
}

var generalCategories = []generalCategory{
	{category{
		name:       "romantic",
		confidence: 0.8,
		keywords:   []string{"romantic", "date", "anniversary", "honeymoon"},
		phrases:    []string{"date night", "for couples", "candle lit"},
	}, 1.0},
	{category{
		name:       "family",
		confidence: 0.8,
		keywords:   []string{"family", "kids", "children", "playground"},
		phrases:    []string{"kid friendly", "child friendly", "with kids", "with children"},
	}, 1.0},
	{category{
		name:       "budget",
		confidence: 0.75,
		keywords:   []string{"cheap", "budget", "affordable", "inexpensive"},
		phrases:    []string{"good value", "low cost", "not expensive"},
	}, 0.9},
	{category{
		name:       "upscale",
		confidence: 0.75,
		keywords:   []string{"luxury", "upscale", "fancy", "michelin", "gourmet"},
		phrases:    []string{"fine dining", "high end"},
	}, 0.9},
	{category{
		name:       "nightlife",
		confidence: 0.7,
		keywords:   []string{"nightlife", "cocktails", "bar", "club", "pub"},
		phrases:    []string{"night out", "live music"},
	}, 0.85},
	{category{
		name:       "outdoor",
		confidence: 0.7,
		keywords:   []string{"terrace", "outdoor", "beach", "hiking", "park", "garden"},
		phrases:    []string{"sea view", "outdoor seating", "al fresco"},
	}, 0.85},
	{category{
		name:       "culture",
		confidence: 0.7,
		keywords:   []string{"museum", "gallery", "historic", "culture", "heritage", "art"},
		phrases:    []string{"old town", "guided tour"},
	}, 0.85},
	{category{
		name:       "quick",
		confidence: 0.65,
		keywords:   []string{"quick", "takeaway", "snack", "fast"},
		phrases:    []string{"grab and go", "to go", "take away"},
	}, 0.8},
}

var timeKeywords = []string{"now", "tonight", "today", "currently", "still", "late", "early"}
var timePhrases = []string{"right now", "at the moment", "at this hour", "this evening", "this morning"}

var hoursKeywords = []string{"open", "opened", "closed", "closes", "closing", "opens", "opening", "hours"}
var hoursPhrases = []string{"opening hours", "what time", "until when", "how late"}

// ClassifyGeneral matches a raw query against the general-purpose vocabulary.
// Every qualifying category contributes a boost entry; the primary intent is
// the qualifying category with the highest base confidence (first declared
// wins ties). It additionally flags time-sensitive and opening-hours wording,
// which downstream gates the time-sensitive result filter.
func ClassifyGeneral(query string) GeneralResult {
	q := Normalize(query)
	result := GeneralResult{
		Primary:    IntentNone,
		Confidence: 0,
		Boosts:     []Boost{},
	}
	if q == "" {
		return result
	}

	for _, cat := range generalCategories {
		score, terms := cat.match(q)
		if score == 0 || cat.confidence <= minConfidence {
			continue
		}
		result.Boosts = append(result.Boosts, Boost{
			Name:       cat.name,
			Keywords:   terms,
			Factor:     cat.boostFactor,
			Confidence: cat.confidence,
		})
		if cat.confidence > result.Confidence {
			result.Primary = cat.name
			result.Confidence = cat.confidence
		}
	}

	result.TimeSensitive = matchesAny(q, timeKeywords, timePhrases)
	result.HoursRelated = matchesAny(q, hoursKeywords, hoursPhrases)

	return result
}

func matchesAny(query string, keywords, phrases []string) bool {
	for _, kw := range keywords {
		if containsWord(query, kw) {
			return true
		}
	}
	for _, ph := range phrases {
		if containsPhrase(query, ph) {
			return true
		}
	}
	return false
}
