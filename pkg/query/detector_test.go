package query

import (
	"testing"

	"github.com/google/uuid"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
)

func prevResults(titles ...string) []scoring.ScoredCandidate {
	out := make([]scoring.ScoredCandidate, len(titles))
	for i, title := range titles {
		out[i] = scoring.ScoredCandidate{
			Candidate: entity.Candidate{Id: uuid.New(), Title: title},
		}
	}
	return out
}

func TestDetectEmptyPreviousNeverFollowUp(t *testing.T) {
	queries := []string{
		"the first one",
		"is that open now",
		"tell me about Casa Pepe",
		"open",
		"all of them",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			det := Detect(q, nil)
			if det.IsFollowUp {
				t.Errorf("IsFollowUp = true for %q with empty previous", q)
			}
		})
	}
}

func TestDetectOrdinal(t *testing.T) {
	prev := prevResults("A", "B", "C")

	tests := []struct {
		query     string
		wantIndex int
	}{
		{"the first one", 0},
		{"what about the second option", 1},
		{"the 3rd one", 2},
		{"the last one", 2},
		{"number 2", 1},
		{"the 9th one", 8}, // out of range, resolver normalizes
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			det := Detect(tt.query, prev)
			if !det.IsFollowUp {
				t.Fatalf("IsFollowUp = false, want true")
			}
			if det.SearchType != SearchTypeSpecific {
				t.Errorf("SearchType = %s, want specific", det.SearchType)
			}
			if det.Reference == nil || det.Reference.Kind != ReferenceOrdinal {
				t.Fatalf("Reference = %+v, want ordinal", det.Reference)
			}
			if det.Reference.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", det.Reference.Index, tt.wantIndex)
			}
		})
	}
}

func TestDetectNamed(t *testing.T) {
	prev := prevResults("Casa Pepe", "La Terraza", "Bar Nou")

	det := Detect("is Casa Pepe open tonight", prev)
	if !det.IsFollowUp || det.Reference == nil || det.Reference.Kind != ReferenceNamed {
		t.Fatalf("expected named follow-up, got %+v", det)
	}
	if det.Reference.Index != 0 {
		t.Errorf("Index = %d, want 0", det.Reference.Index)
	}

	// Punctuation-normalized match.
	det = Detect("how do I reach la terraza?", prev)
	if !det.IsFollowUp || det.Reference == nil || det.Reference.Name != "La Terraza" {
		t.Fatalf("expected normalized named match, got %+v", det)
	}
}

func TestDetectAllPrevious(t *testing.T) {
	prev := prevResults("A", "B", "C")
	det := Detect("which of them are open late", prev)
	if !det.IsFollowUp || det.Reference == nil || det.Reference.Kind != ReferenceAll {
		t.Fatalf("expected all-previous follow-up, got %+v", det)
	}
}

func TestDetectReferencePlusTimeKeyword(t *testing.T) {
	prev := prevResults("A", "B")

	det := Detect("is it open", prev)
	if !det.IsFollowUp {
		t.Fatal("reference word + time keyword should be a follow-up")
	}
	if det.Reference != nil {
		t.Errorf("Reference = %+v, want nil (defaults to first result)", det.Reference)
	}
	if det.SearchType != SearchTypeContextual {
		t.Errorf("SearchType = %s, want contextual", det.SearchType)
	}
}

func TestDetectNewSearch(t *testing.T) {
	prev := prevResults("A")

	det := Detect("sushi places near the marina", prev)
	if det.IsFollowUp {
		t.Errorf("plain search should not be a follow-up: %+v", det)
	}
	if det.SearchType != SearchTypeGeneral {
		t.Errorf("SearchType = %s, want general", det.SearchType)
	}
}

// A specific-looking query while previous results exist must report follow-up;
// type and follow-up status may never contradict.
func TestSpecificTypeImpliesFollowUp(t *testing.T) {
	prev := prevResults("A", "B")

	det := Detect("where is the nearest pharmacy", prev)
	if det.SearchType == SearchTypeSpecific && !det.IsFollowUp {
		t.Fatalf("specific search type with non-empty previous must be a follow-up: %+v", det)
	}
}

func TestDetectQueryOpenAloneIsNewSearch(t *testing.T) {
	det := Detect("open", nil)
	if det.IsFollowUp {
		t.Fatal("bare 'open' with no previous results must not be a follow-up")
	}
	if det.SearchType != SearchTypeGeneral {
		t.Errorf("SearchType = %s, want general", det.SearchType)
	}
}

func TestDetectDeterministic(t *testing.T) {
	prev := prevResults("Casa Pepe", "La Terraza")
	first := Detect("is the first one open now", prev)
	for i := 0; i < 5; i++ {
		again := Detect("is the first one open now", prev)
		if again.SearchType != first.SearchType || again.IsFollowUp != first.IsFollowUp {
			t.Fatal("detection not deterministic")
		}
	}
}
