package intent

// Dietary intent vocabulary. Order matters: on equal confidence the first
// declared category wins.
var dietaryCategories = []category{
	{
		name:       "vegetarian",
		confidence: 0.9,
		keywords:   []string{"vegetarian", "veggie", "meatless"},
		phrases:    []string{"no meat", "without meat", "meat free"},
	},
	{
		name:       "vegan",
		confidence: 0.9,
		keywords:   []string{"vegan"},
		phrases:    []string{"plant based", "fully plant-based"},
	},
	{
		name:       "gluten-free",
		confidence: 0.85,
		keywords:   []string{"gluten", "celiac", "coeliac"},
		phrases:    []string{"gluten free", "without gluten", "no gluten"},
	},
	{
		name:       "halal",
		confidence: 0.85,
		keywords:   []string{"halal"},
		phrases:    []string{"halal certified", "halal food"},
	},
	{
		name:       "kosher",
		confidence: 0.85,
		keywords:   []string{"kosher"},
		phrases:    []string{"kosher certified", "kosher food"},
	},
	{
		name:       "lactose-free",
		confidence: 0.8,
		keywords:   []string{"lactose"},
		phrases:    []string{"lactose free", "dairy free", "no dairy", "without dairy"},
	},
}

// ClassifyDietary matches a raw query against the dietary vocabulary.
// Pure and deterministic: identical input always yields identical output.
func ClassifyDietary(query string) Intent {
	q := Normalize(query)
	if q == "" {
		return None()
	}

	winner, terms, found := classify(q, dietaryCategories)
	if !found {
		return None()
	}

	return Intent{
		Type:       winner.name,
		Confidence: winner.confidence,
		Keywords:   terms,
	}
}
