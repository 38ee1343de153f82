package scoring

import "strings"

// dietaryCategoryBoosts lifts the dietary signal for categories known to
// carry the diet well even when the description never says so.
var dietaryCategoryBoosts = map[string]map[string]float64{
	"vegetarian": {"cafe": 0.15, "café": 0.15, "restaurant": 0.05, "juice": 0.1},
	"vegan":      {"cafe": 0.15, "café": 0.15, "juice": 0.15, "health": 0.1},
	"halal":      {"kebab": 0.15, "turkish": 0.1, "middle eastern": 0.1},
	"kosher":     {"deli": 0.1},
}

// categoryRelevanceTable maps intent type to category-substring relevance
// constants. The best-matching substring wins; no match falls back to the
// neutral 0.5.
var categoryRelevanceTable = map[string]map[string]float64{
	"vegetarian": {"restaurant": 0.9, "cafe": 0.85, "café": 0.85, "bar": 0.6, "fast food": 0.5},
	"vegan":      {"restaurant": 0.9, "cafe": 0.85, "café": 0.85, "juice": 0.9, "bar": 0.55},
	"gluten-free": {"restaurant": 0.85, "bakery": 0.8, "cafe": 0.75, "café": 0.75},
	"halal":       {"restaurant": 0.9, "kebab": 0.9, "fast food": 0.7},
	"kosher":      {"restaurant": 0.9, "deli": 0.85},
	"lactose-free": {"restaurant": 0.8, "cafe": 0.7, "café": 0.7, "ice cream": 0.6},
	"romantic":  {"restaurant": 0.9, "wine": 0.85, "beach": 0.8, "viewpoint": 0.8, "bar": 0.7},
	"family":    {"park": 0.9, "attraction": 0.9, "museum": 0.8, "beach": 0.85, "restaurant": 0.7, "zoo": 0.95},
	"budget":    {"fast food": 0.85, "market": 0.8, "cafe": 0.75, "café": 0.75, "restaurant": 0.6},
	"upscale":   {"restaurant": 0.9, "wine": 0.85, "hotel": 0.8, "cocktail": 0.8},
	"nightlife": {"bar": 0.95, "club": 0.95, "pub": 0.9, "restaurant": 0.6, "cocktail": 0.9},
	"outdoor":   {"beach": 0.95, "park": 0.9, "hiking": 0.95, "garden": 0.85, "viewpoint": 0.9},
	"culture":   {"museum": 0.95, "gallery": 0.9, "monument": 0.9, "theater": 0.85, "church": 0.8},
	"quick":     {"fast food": 0.95, "takeaway": 0.95, "snack": 0.9, "bakery": 0.8, "cafe": 0.7, "café": 0.7},
}

func dietaryCategoryBoost(intentType, cat string) float64 {
	table, ok := dietaryCategoryBoosts[intentType]
	if !ok {
		return 0
	}
	lowered := strings.ToLower(cat)
	best := 0.0
	for sub, boost := range table {
		if strings.Contains(lowered, sub) && boost > best {
			best = boost
		}
	}
	return best
}

func categoryRelevance(intentType, cat string) float64 {
	table, ok := categoryRelevanceTable[intentType]
	if !ok {
		return neutral
	}
	lowered := strings.ToLower(cat)
	best := -1.0
	for sub, rel := range table {
		if strings.Contains(lowered, sub) && rel > best {
			best = rel
		}
	}
	if best < 0 {
		return neutral
	}
	return best
}
