package scoring

// Weights is the externally supplied weight vector for the scoring engine.
// Weights need not sum to 1, but the default configuration does.
type Weights struct {
	Semantic     float64 `json:"semantic"`
	Rating       float64 `json:"rating"`
	Distance     float64 `json:"distance"`
	Freshness    float64 `json:"freshness"`
	Popularity   float64 `json:"popularity"`
	Dietary      float64 `json:"dietary"`
	Category     float64 `json:"category"`
	GeneralBoost float64 `json:"general_boost"`
}

// DefaultWeights returns the production weight configuration (sums to 1.0).
func DefaultWeights() Weights {
	return Weights{
		Semantic:     0.25,
		Rating:       0.15,
		Distance:     0.15,
		Freshness:    0.10,
		Popularity:   0.10,
		Dietary:      0.10,
		Category:     0.10,
		GeneralBoost: 0.05,
	}
}

// Signal names used as breakdown map keys.
const (
	SignalSemantic     = "semantic"
	SignalRating       = "rating"
	SignalDistance     = "distance"
	SignalFreshness    = "freshness"
	SignalPopularity   = "popularity"
	SignalDietary      = "dietary"
	SignalCategory     = "category"
	SignalGeneralBoost = "general_boost"
)
