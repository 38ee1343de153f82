package mapper

import (
	"encoding/json"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/model"

	"gorm.io/datatypes"
)

type POIMapper struct{}

func NewPOIMapper() *POIMapper {
	return &POIMapper{}
}

func (m *POIMapper) ToCandidate(e *model.POI) *entity.Candidate {
	if e == nil {
		return nil
	}

	var amenities []string
	if len(e.Amenities) > 0 {
		// Ignore malformed amenity payloads, they only feed soft signals.
		_ = json.Unmarshal(e.Amenities, &amenities)
	}

	var hours json.RawMessage
	if len(e.OpeningHours) > 0 {
		hours = json.RawMessage(e.OpeningHours)
	}

	return &entity.Candidate{
		Id:           e.Id,
		Title:        e.Title,
		Category:     e.Category,
		Description:  e.Description,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		Rating:       e.Rating,
		Amenities:    amenities,
		OpeningHours: hours,
		ReviewCount:  e.ReviewCount,
		LastReviewAt: e.LastReviewAt,
	}
}

func (m *POIMapper) ToModel(e *entity.Candidate) *model.POI {
	if e == nil {
		return nil
	}

	var amenities datatypes.JSON
	if len(e.Amenities) > 0 {
		raw, err := json.Marshal(e.Amenities)
		if err == nil {
			amenities = datatypes.JSON(raw)
		}
	}

	var hours datatypes.JSON
	if len(e.OpeningHours) > 0 {
		hours = datatypes.JSON(e.OpeningHours)
	}

	return &model.POI{
		Id:           e.Id,
		Title:        e.Title,
		Category:     e.Category,
		Description:  e.Description,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		Rating:       e.Rating,
		Amenities:    amenities,
		OpeningHours: hours,
		ReviewCount:  e.ReviewCount,
		LastReviewAt: e.LastReviewAt,
	}
}

func (m *POIMapper) ToCandidates(pois []*model.POI) []*entity.Candidate {
	candidates := make([]*entity.Candidate, len(pois))
	for i, p := range pois {
		candidates[i] = m.ToCandidate(p)
	}
	return candidates
}
