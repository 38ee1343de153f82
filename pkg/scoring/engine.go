package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/intent"
)

// neutral is the default for signals whose input data is unavailable.
const neutral = 0.5

// unknownFreshness is the freshness value for candidates without any review
// recency data. Kept below neutral on purpose: "no reviews in sight" is a
// weaker signal than "reviewed sometime this year".
const unknownFreshness = 0.3

// ScoredCandidate is a Candidate plus its named signal breakdown and the
// weighted total. Every breakdown value is clamped to [0,1] before weighting;
// the total is a pure function of breakdown and weights.
type ScoredCandidate struct {
	entity.Candidate
	Breakdown map[string]float64 `json:"breakdown"`
	Total     float64            `json:"total"`
}

// Location is a user position in degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Context carries the per-request signals the engine scores against.
type Context struct {
	Location *Location
	Dietary  intent.Intent
	General  intent.GeneralResult
	Now      time.Time
}

// Engine combines per-candidate raw signals into one explainable total score.
// It holds no per-request state; a single instance serves all requests.
type Engine struct {
	weights       Weights
	maxDistanceKm float64
}

// NewEngine builds an engine with an explicit weight configuration.
// maxDistanceKm controls the decay rate of the distance signal.
func NewEngine(weights Weights, maxDistanceKm float64) *Engine {
	if maxDistanceKm <= 0 {
		maxDistanceKm = 10
	}
	return &Engine{weights: weights, maxDistanceKm: maxDistanceKm}
}

// Score computes the full signal breakdown and total for one candidate.
func (e *Engine) Score(c entity.Candidate, uc Context) ScoredCandidate {
	breakdown := map[string]float64{
		SignalSemantic:     clamp01(c.Relevance),
		SignalRating:       clamp01(c.Rating / 5),
		SignalDistance:     e.distanceSignal(c, uc),
		SignalFreshness:    freshnessSignal(c, uc.Now),
		SignalPopularity:   popularitySignal(c),
		SignalDietary:      dietarySignal(c, uc.Dietary),
		SignalCategory:     categorySignal(c, uc),
		SignalGeneralBoost: generalBoostSignal(c, uc.General),
	}

	return ScoredCandidate{
		Candidate: c,
		Breakdown: breakdown,
		Total:     Total(breakdown, e.weights),
	}
}

// Total computes the weighted sum over a breakdown. Exposed separately so the
// total stays a pure, testable function of (breakdown, weights).
func Total(breakdown map[string]float64, w Weights) float64 {
	return clamp01(breakdown[SignalSemantic])*w.Semantic +
		clamp01(breakdown[SignalRating])*w.Rating +
		clamp01(breakdown[SignalDistance])*w.Distance +
		clamp01(breakdown[SignalFreshness])*w.Freshness +
		clamp01(breakdown[SignalPopularity])*w.Popularity +
		clamp01(breakdown[SignalDietary])*w.Dietary +
		clamp01(breakdown[SignalCategory])*w.Category +
		clamp01(breakdown[SignalGeneralBoost])*w.GeneralBoost
}

// Rank scores all candidates and sorts by total descending. The sort is
// stable: candidates with equal totals keep their retrieval order.
func (e *Engine) Rank(candidates []entity.Candidate, uc Context) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = e.Score(c, uc)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Total > scored[j].Total
	})
	return scored
}

// distanceSignal decays exponentially with distance from the user. Neutral
// when either side has no location.
func (e *Engine) distanceSignal(c entity.Candidate, uc Context) float64 {
	if uc.Location == nil || c.Latitude == nil || c.Longitude == nil {
		return neutral
	}
	dKm := haversineKm(uc.Location.Latitude, uc.Location.Longitude, *c.Latitude, *c.Longitude)
	return clamp01(math.Exp(-dKm / (e.maxDistanceKm / 3)))
}

// freshnessSignal is a step function over days since the last review.
func freshnessSignal(c entity.Candidate, now time.Time) float64 {
	if c.LastReviewAt == nil {
		return unknownFreshness
	}
	if now.IsZero() {
		now = time.Now()
	}
	days := now.Sub(*c.LastReviewAt).Hours() / 24
	switch {
	case days < 30:
		return 1.0
	case days < 90:
		return 0.8
	case days < 365:
		return 0.6
	default:
		return 0.4
	}
}

// popularitySignal combines review volume and amenity count, both saturating.
func popularitySignal(c entity.Candidate) float64 {
	if c.ReviewCount == 0 && len(c.Amenities) == 0 {
		return neutral
	}
	reviews := math.Min(float64(c.ReviewCount)/200, 1)
	amenities := math.Min(float64(len(c.Amenities))/10, 1)
	return clamp01(0.7*reviews + 0.3*amenities)
}

// dietarySignal measures the overlap between the detected dietary keywords
// and the candidate's text, boosted by intent confidence and by the
// category-specific table (cafés lean vegetarian-friendly, for example).
func dietarySignal(c entity.Candidate, diet intent.Intent) float64 {
	if diet.Type == intent.IntentNone || len(diet.Keywords) == 0 {
		return neutral
	}
	text := candidateText(c)
	hits := 0
	for _, kw := range diet.Keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	overlap := float64(hits) / float64(len(diet.Keywords))
	boost := dietaryCategoryBoost(diet.Type, c.Category)
	return clamp01(overlap*diet.Confidence + boost)
}

// categorySignal looks up (intent type x category) relevance. The general
// primary intent takes precedence over the dietary one; without either the
// signal is neutral.
func categorySignal(c entity.Candidate, uc Context) float64 {
	intentType := uc.General.Primary
	if intentType == intent.IntentNone || intentType == "" {
		intentType = uc.Dietary.Type
	}
	if intentType == intent.IntentNone || intentType == "" {
		return neutral
	}
	return categoryRelevance(intentType, c.Category)
}

// generalBoostSignal averages, across all detected boosts, the boost factor
// times its confidence for candidates hitting a boost keyword; candidates
// missing a boost contribute the neutral value for that boost.
func generalBoostSignal(c entity.Candidate, general intent.GeneralResult) float64 {
	if len(general.Boosts) == 0 {
		return neutral
	}
	text := candidateText(c)
	sum := 0.0
	for _, b := range general.Boosts {
		hit := false
		for _, kw := range b.Keywords {
			if strings.Contains(text, kw) {
				hit = true
				break
			}
		}
		if hit {
			sum += clamp01(b.Factor * b.Confidence)
		} else {
			sum += neutral
		}
	}
	return clamp01(sum / float64(len(general.Boosts)))
}

func candidateText(c entity.Candidate) string {
	parts := []string{c.Title, c.Category, c.Description}
	parts = append(parts, c.Amenities...)
	return strings.ToLower(strings.Join(parts, " "))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
