package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/hours"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/intent"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/query"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/session"
)

// HoursState buckets a candidate relative to its opening hours at query time.
type HoursState string

const (
	HoursOpen        HoursState = "open"
	HoursClosingSoon HoursState = "closing_soon"
	HoursOpeningSoon HoursState = "opening_soon"
	HoursClosed      HoursState = "closed"
)

// Interpretation summarizes how the query was understood, for callers that
// want to explain or debug the answer.
type Interpretation struct {
	SearchType  string        `json:"search_type"`
	IsFollowUp  bool          `json:"is_follow_up"`
	Confidence  float64       `json:"confidence"`
	Dietary     intent.Intent `json:"dietary"`
	Primary     string        `json:"primary_intent"`
	TimeFilter  bool          `json:"time_filter_applied"`
	Collection  string        `json:"collection,omitempty"`
	ResolvedRef string        `json:"resolved_reference,omitempty"`
}

// Response is the assembled answer for one search turn.
type Response struct {
	Results        []scoring.ScoredCandidate `json:"results"`
	SearchType     string                    `json:"search_type"`
	Interpretation Interpretation            `json:"query_interpretation"`
	Context        session.Context           `json:"context"`
	TextSummary    string                    `json:"text_summary"`
}

// Assembler turns ranked candidates into the caller-facing response and the
// context snapshot the next turn resolves against.
type Assembler struct {
	evaluator  hours.Evaluator
	maxResults int
}

func NewAssembler(evaluator hours.Evaluator, maxResults int) *Assembler {
	if maxResults <= 0 {
		maxResults = 20
	}
	return &Assembler{evaluator: evaluator, maxResults: maxResults}
}

// Assemble builds the final response. When general intent flags the query as
// both time-related and hours-related, candidates are re-grouped by opening
// state with closed entities dropped; score order is preserved within each
// bucket.
func (a *Assembler) Assemble(rawQuery string, detection query.Detection, general intent.GeneralResult, dietary intent.Intent, ranked []scoring.ScoredCandidate, now time.Time) Response {
	timeFiltered := false
	results := ranked
	if general.TimeSensitive && general.HoursRelated {
		results = a.filterByHours(ranked, now)
		timeFiltered = true
	}
	if len(results) > a.maxResults {
		results = results[:a.maxResults]
	}

	interp := Interpretation{
		SearchType: string(detection.SearchType),
		IsFollowUp: detection.IsFollowUp,
		Confidence: detection.Confidence,
		Dietary:    dietary,
		Primary:    general.Primary,
		TimeFilter: timeFiltered,
		Collection: CollectionFor(detection.SearchType),
	}
	if detection.Reference != nil {
		interp.ResolvedRef = string(detection.Reference.Kind)
	}

	return Response{
		Results:        results,
		SearchType:     string(detection.SearchType),
		Interpretation: interp,
		Context: session.Context{
			LastQuery:   rawQuery,
			LastResults: capResults(results, session.MaxLastResults),
			SearchType:  string(detection.SearchType),
		},
		TextSummary: a.summarize(results, detection, general, timeFiltered, now),
	}
}

// filterByHours partitions ranked candidates into opening-state buckets and
// concatenates open, closing-soon, opening-soon. Closed entities are dropped.
func (a *Assembler) filterByHours(ranked []scoring.ScoredCandidate, now time.Time) []scoring.ScoredCandidate {
	var open, closingSoon, openingSoon []scoring.ScoredCandidate
	for _, c := range ranked {
		switch a.classify(c, now) {
		case HoursClosingSoon:
			closingSoon = append(closingSoon, c)
		case HoursOpen:
			open = append(open, c)
		case HoursOpeningSoon:
			openingSoon = append(openingSoon, c)
		}
	}
	out := make([]scoring.ScoredCandidate, 0, len(open)+len(closingSoon)+len(openingSoon))
	out = append(out, open...)
	out = append(out, closingSoon...)
	out = append(out, openingSoon...)
	return out
}

// classify evaluates one candidate's opening state. Closing-soon wins over
// plain open so the summary can warn about it.
func (a *Assembler) classify(c scoring.ScoredCandidate, now time.Time) HoursState {
	if a.evaluator.IsOpen(c.OpeningHours, now) {
		if a.evaluator.IsClosingSoon(c.OpeningHours, now) {
			return HoursClosingSoon
		}
		return HoursOpen
	}
	if a.evaluator.IsOpeningSoon(c.OpeningHours, now) {
		return HoursOpeningSoon
	}
	return HoursClosed
}

func (a *Assembler) summarize(results []scoring.ScoredCandidate, detection query.Detection, general intent.GeneralResult, timeFiltered bool, now time.Time) string {
	if len(results) == 0 {
		if timeFiltered {
			return "Nothing matching your search is open right now."
		}
		return "I could not find any places matching your search."
	}

	var b strings.Builder
	top := results[0]
	if detection.IsFollowUp && len(results) == 1 {
		fmt.Fprintf(&b, "About %s:", top.Title)
	} else {
		fmt.Fprintf(&b, "I found %d place", len(results))
		if len(results) != 1 {
			b.WriteString("s")
		}
		if general.Primary != intent.IntentNone {
			fmt.Fprintf(&b, " for a %s outing", general.Primary)
		}
		fmt.Fprintf(&b, ". Top match: %s", top.Title)
		if top.Rating > 0 {
			fmt.Fprintf(&b, " (rated %.1f)", top.Rating)
		}
		b.WriteString(".")
	}

	if timeFiltered {
		switch a.classify(top, now) {
		case HoursClosingSoon:
			b.WriteString(" It is open now but closing soon.")
		case HoursOpeningSoon:
			b.WriteString(" It is opening soon.")
		default:
			b.WriteString(" It is open now.")
		}
	}
	return b.String()
}

func capResults(results []scoring.ScoredCandidate, max int) []scoring.ScoredCandidate {
	if len(results) <= max {
		return results
	}
	return results[:max]
}
