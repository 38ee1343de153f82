package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Candidate is a POI as returned by retrieval, before scoring. It owns no
// persistence concerns; the relevance value is the raw retrieval similarity
// in [0,1], higher meaning a closer match.
type Candidate struct {
	Id           uuid.UUID
	Title        string
	Category     string
	Description  string
	Latitude     *float64
	Longitude    *float64
	Rating       float64 // 0..5
	Amenities    []string
	OpeningHours json.RawMessage // Weekly JSON, nil when unknown
	ReviewCount  int
	LastReviewAt *time.Time
	Relevance    float64
}
