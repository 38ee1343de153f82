package intent

import (
	"testing"
)

func TestClassifyDietary(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantType       string
		wantConfidence float64
	}{
		{
			name:           "vegetarian restaurant",
			query:          "vegetarian restaurant",
			wantType:       "vegetarian",
			wantConfidence: 0.9,
		},
		{
			name:           "vegan keyword",
			query:          "best vegan breakfast near the beach",
			wantType:       "vegan",
			wantConfidence: 0.9,
		},
		{
			name:           "gluten free phrase",
			query:          "somewhere with gluten free pizza",
			wantType:       "gluten-free",
			wantConfidence: 0.85,
		},
		{
			name:           "halal",
			query:          "halal food nearby",
			wantType:       "halal",
			wantConfidence: 0.85,
		},
		{
			name:           "no match",
			query:          "cosy tapas place",
			wantType:       IntentNone,
			wantConfidence: 0,
		},
		{
			name:           "empty query",
			query:          "   ",
			wantType:       IntentNone,
			wantConfidence: 0,
		},
		{
			name:           "case insensitive",
			query:          "VEGETARIAN options please",
			wantType:       "vegetarian",
			wantConfidence: 0.9,
		},
		{
			name:           "tie keeps first declared category",
			query:          "vegetarian and vegan friendly",
			wantType:       "vegetarian",
			wantConfidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDietary(tt.query)
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyDietaryDeterministic(t *testing.T) {
	first := ClassifyDietary("vegan tapas with gluten free bread")
	for i := 0; i < 10; i++ {
		again := ClassifyDietary("vegan tapas with gluten free bread")
		if again.Type != first.Type || again.Confidence != first.Confidence {
			t.Fatalf("classification not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestClassifyDietaryKeywords(t *testing.T) {
	got := ClassifyDietary("a place with no meat and vegetarian tapas")
	if got.Type != "vegetarian" {
		t.Fatalf("Type = %q, want vegetarian", got.Type)
	}
	if len(got.Keywords) < 2 {
		t.Errorf("expected both keyword and phrase hits, got %v", got.Keywords)
	}
}

func TestClassifyDietaryWordBoundary(t *testing.T) {
	// "veggie" inside another word must not match.
	got := ClassifyDietary("the veggieburgerland theme park")
	if got.Type != IntentNone {
		t.Errorf("substring match leaked through word boundary: %+v", got)
	}
}
