package search

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/hours"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/intent"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/query"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 14:00 local time.
var assembleNow = time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

func mondayHours(open, close string) json.RawMessage {
	raw, _ := json.Marshal(map[string][]map[string]string{
		"monday": {{"open": open, "close": close}},
	})
	return raw
}

func ranked(titles ...string) []scoring.ScoredCandidate {
	out := make([]scoring.ScoredCandidate, len(titles))
	for i, t := range titles {
		out[i] = scoring.ScoredCandidate{
			Candidate: entity.Candidate{Title: t},
			Total:     1.0 - float64(i)*0.1,
		}
	}
	return out
}

func TestAssembleNoTimeFilterPassesThrough(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)
	in := ranked("A", "B", "C")
	in[0].OpeningHours = mondayHours("20:00", "23:00") // would be closed

	resp := a.Assemble("pizza", query.Detection{SearchType: query.SearchTypeGeneral}, intent.GeneralResult{}, intent.None(), in, assembleNow)

	require.Len(t, resp.Results, 3)
	assert.Equal(t, "A", resp.Results[0].Title)
	assert.False(t, resp.Interpretation.TimeFilter)
}

func TestAssembleTimeFilterBucketsAndDropsClosed(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)

	in := ranked("ClosingSoon", "Closed", "Open1", "OpeningSoon", "Open2")
	in[0].OpeningHours = mondayHours("09:00", "14:30") // open, closes within the hour
	in[1].OpeningHours = mondayHours("18:00", "23:00") // closed, opens far later
	in[2].OpeningHours = mondayHours("09:00", "22:00") // open
	in[3].OpeningHours = mondayHours("14:30", "22:00") // opens within the hour
	in[4].OpeningHours = mondayHours("10:00", "20:00") // open

	general := intent.GeneralResult{TimeSensitive: true, HoursRelated: true}
	resp := a.Assemble("what is open right now", query.Detection{SearchType: query.SearchTypeGeneral}, general, intent.None(), in, assembleNow)

	require.Len(t, resp.Results, 4)
	// Open bucket first in score order, then closing-soon, then opening-soon.
	assert.Equal(t, "Open1", resp.Results[0].Title)
	assert.Equal(t, "Open2", resp.Results[1].Title)
	assert.Equal(t, "ClosingSoon", resp.Results[2].Title)
	assert.Equal(t, "OpeningSoon", resp.Results[3].Title)
	assert.True(t, resp.Interpretation.TimeFilter)
}

func TestAssembleUnknownHoursSurviveTimeFilter(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)
	in := ranked("NoHours")

	general := intent.GeneralResult{TimeSensitive: true, HoursRelated: true}
	resp := a.Assemble("anything open now", query.Detection{SearchType: query.SearchTypeGeneral}, general, intent.None(), in, assembleNow)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "NoHours", resp.Results[0].Title)
}

func TestAssembleCapsResults(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 2)
	in := ranked("A", "B", "C", "D")

	resp := a.Assemble("food", query.Detection{SearchType: query.SearchTypeGeneral}, intent.GeneralResult{}, intent.None(), in, assembleNow)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].Title)
	assert.Equal(t, "B", resp.Results[1].Title)
}

func TestAssembleContextSnapshot(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)
	in := ranked("A", "B", "C", "D", "E", "F", "G")

	resp := a.Assemble("tapas nearby", query.Detection{SearchType: query.SearchTypeGeneral}, intent.GeneralResult{}, intent.None(), in, assembleNow)

	assert.Equal(t, "tapas nearby", resp.Context.LastQuery)
	assert.Equal(t, "general", resp.Context.SearchType)
	// The snapshot keeps only the head of the list for follow-up resolution.
	assert.Len(t, resp.Context.LastResults, 5)
	assert.Equal(t, "A", resp.Context.LastResults[0].Title)
}

func TestAssembleEmptyResultSummaries(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)

	plain := a.Assemble("x", query.Detection{SearchType: query.SearchTypeGeneral}, intent.GeneralResult{}, intent.None(), nil, assembleNow)
	assert.Contains(t, plain.TextSummary, "could not find")

	general := intent.GeneralResult{TimeSensitive: true, HoursRelated: true}
	filtered := a.Assemble("x open now", query.Detection{SearchType: query.SearchTypeGeneral}, general, intent.None(), nil, assembleNow)
	assert.Contains(t, filtered.TextSummary, "open right now")
}

func TestAssembleFollowUpAboutSingleResult(t *testing.T) {
	a := NewAssembler(hours.NewEvaluator(), 20)
	in := ranked("Casa Pepe")
	in[0].OpeningHours = mondayHours("09:00", "22:00")

	general := intent.GeneralResult{TimeSensitive: true, HoursRelated: true}
	det := query.Detection{SearchType: query.SearchTypeContextual, IsFollowUp: true}
	resp := a.Assemble("is the first one open now", det, general, intent.None(), in, assembleNow)

	require.Len(t, resp.Results, 1)
	assert.Contains(t, resp.TextSummary, "Casa Pepe")
	assert.Contains(t, resp.TextSummary, "open now")
}

func TestCollectionFor(t *testing.T) {
	assert.Equal(t, CollectionGeneral, CollectionFor(query.SearchTypeGeneral))
	assert.Equal(t, CollectionSpecific, CollectionFor(query.SearchTypeSpecific))
	assert.Equal(t, CollectionContextual, CollectionFor(query.SearchTypeContextual))
}
