package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/intent"
)

func floatPtr(v float64) *float64 { return &v }

func candidate(title string, relevance float64) entity.Candidate {
	return entity.Candidate{
		Id:        uuid.New(),
		Title:     title,
		Category:  "Restaurant",
		Rating:    4.0,
		Relevance: relevance,
	}
}

func TestScoreBreakdownClamped(t *testing.T) {
	e := NewEngine(DefaultWeights(), 10)
	c := candidate("Casa Pepe", 1.7) // out-of-range relevance from a misbehaving index
	c.Rating = 9

	scored := e.Score(c, Context{})
	for name, v := range scored.Breakdown {
		if v < 0 || v > 1 {
			t.Errorf("signal %s = %v, outside [0,1]", name, v)
		}
	}
	if scored.Breakdown[SignalSemantic] != 1 {
		t.Errorf("semantic = %v, want clamped 1", scored.Breakdown[SignalSemantic])
	}
}

func TestTotalIsPureFunctionOfBreakdown(t *testing.T) {
	w := DefaultWeights()
	breakdown := map[string]float64{
		SignalSemantic:     0.8,
		SignalRating:       0.9,
		SignalDistance:     0.5,
		SignalFreshness:    0.6,
		SignalPopularity:   0.4,
		SignalDietary:      0.5,
		SignalCategory:     0.5,
		SignalGeneralBoost: 0.5,
	}
	a := Total(breakdown, w)
	b := Total(breakdown, w)
	if a != b {
		t.Fatalf("Total not deterministic: %v vs %v", a, b)
	}
}

func TestScoringMonotonic(t *testing.T) {
	w := DefaultWeights()
	base := map[string]float64{
		SignalSemantic:     0.5,
		SignalRating:       0.5,
		SignalDistance:     0.5,
		SignalFreshness:    0.5,
		SignalPopularity:   0.5,
		SignalDietary:      0.5,
		SignalCategory:     0.5,
		SignalGeneralBoost: 0.5,
	}
	baseTotal := Total(base, w)

	for signal := range base {
		bumped := make(map[string]float64, len(base))
		for k, v := range base {
			bumped[k] = v
		}
		bumped[signal] = 0.9
		if Total(bumped, w) < baseTotal {
			t.Errorf("raising %s decreased total", signal)
		}
	}
}

func TestRankStableSort(t *testing.T) {
	e := NewEngine(DefaultWeights(), 10)
	// Identical candidates score identically; order must match input order.
	cands := []entity.Candidate{
		candidate("A", 0.7),
		candidate("B", 0.7),
		candidate("C", 0.7),
	}
	ranked := e.Rank(cands, Context{})
	wantOrder := []string{"A", "B", "C"}
	for i, want := range wantOrder {
		if ranked[i].Title != want {
			t.Fatalf("position %d = %q, want %q (stable sort violated)", i, ranked[i].Title, want)
		}
	}
}

func TestRankDescending(t *testing.T) {
	e := NewEngine(DefaultWeights(), 10)
	cands := []entity.Candidate{
		candidate("low", 0.1),
		candidate("high", 0.9),
		candidate("mid", 0.5),
	}
	ranked := e.Rank(cands, Context{})
	if ranked[0].Title != "high" || ranked[2].Title != "low" {
		t.Errorf("unexpected ranking order: %s, %s, %s", ranked[0].Title, ranked[1].Title, ranked[2].Title)
	}
}

func TestDistanceSignal(t *testing.T) {
	e := NewEngine(DefaultWeights(), 10)
	near := candidate("near", 0.5)
	near.Latitude = floatPtr(38.847)
	near.Longitude = floatPtr(0.033)
	far := candidate("far", 0.5)
	far.Latitude = floatPtr(39.5)
	far.Longitude = floatPtr(2.0)

	uc := Context{Location: &Location{Latitude: 38.845, Longitude: 0.030}}
	nearScore := e.Score(near, uc).Breakdown[SignalDistance]
	farScore := e.Score(far, uc).Breakdown[SignalDistance]
	if nearScore <= farScore {
		t.Errorf("near (%v) should outscore far (%v)", nearScore, farScore)
	}

	// No user location: neutral.
	if got := e.Score(near, Context{}).Breakdown[SignalDistance]; got != 0.5 {
		t.Errorf("distance without location = %v, want 0.5", got)
	}
}

func TestFreshnessSignalSteps(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		t := now.AddDate(0, 0, -d)
		return &t
	}

	tests := []struct {
		name string
		last *time.Time
		want float64
	}{
		{"recent", daysAgo(10), 1.0},
		{"this quarter", daysAgo(60), 0.8},
		{"this year", daysAgo(200), 0.6},
		{"stale", daysAgo(400), 0.4},
		{"unknown", nil, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate("x", 0.5)
			c.LastReviewAt = tt.last
			if got := freshnessSignal(c, now); got != tt.want {
				t.Errorf("freshness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDietarySignal(t *testing.T) {
	diet := intent.ClassifyDietary("vegetarian restaurant")

	match := candidate("Green Garden", 0.5)
	match.Description = "vegetarian tapas and salads"
	miss := candidate("Steakhouse Paco", 0.5)
	miss.Description = "grilled meats"

	if got := dietarySignal(match, diet); got <= dietarySignal(miss, diet) {
		t.Errorf("matching candidate should outscore non-matching")
	}
	// No intent: neutral.
	if got := dietarySignal(match, intent.None()); got != 0.5 {
		t.Errorf("dietary without intent = %v, want 0.5", got)
	}
}

func TestCategorySignalLookup(t *testing.T) {
	uc := Context{General: intent.ClassifyGeneral("nightlife and cocktails")}

	bar := candidate("Sunset Bar", 0.5)
	bar.Category = "Cocktail Bar"
	museum := candidate("Ethnographic Museum", 0.5)
	museum.Category = "Museum"

	e := NewEngine(DefaultWeights(), 10)
	barScore := e.Score(bar, uc).Breakdown[SignalCategory]
	museumScore := e.Score(museum, uc).Breakdown[SignalCategory]
	if barScore <= museumScore {
		t.Errorf("bar (%v) should outscore museum (%v) for nightlife intent", barScore, museumScore)
	}
	if museumScore != 0.5 {
		t.Errorf("unmapped category = %v, want neutral 0.5", museumScore)
	}
}

func TestGeneralBoostSignal(t *testing.T) {
	general := intent.ClassifyGeneral("romantic date night")
	match := candidate("La Terraza", 0.5)
	match.Description = "romantic rooftop dining"

	got := generalBoostSignal(match, general)
	if got <= 0.5 {
		t.Errorf("boost-matching candidate = %v, want > 0.5", got)
	}
	if generalBoostSignal(match, intent.GeneralResult{}) != 0.5 {
		t.Error("no boosts must yield neutral 0.5")
	}
}
