package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PublishIndexPOIMessage asks the indexing consumer to (re)embed one POI.
type PublishIndexPOIMessage struct {
	POIId uuid.UUID `json:"poi_id"`
}

type CreatePOIRequest struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Category     string          `json:"category" validate:"required,max=120"`
	Description  string          `json:"description"`
	Latitude     *float64        `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64        `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Rating       float64         `json:"rating" validate:"min=0,max=5"`
	Amenities    []string        `json:"amenities"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	ReviewCount  int             `json:"review_count" validate:"min=0"`
	LastReviewAt *time.Time      `json:"last_review_at"`
}

type CreatePOIResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListPOIRequest struct {
	Category  string  `query:"category" validate:"omitempty,max=120"`
	MinRating float64 `query:"min_rating" validate:"min=0,max=5"`
	Page      int     `query:"page" validate:"min=0"`
	Limit     int     `query:"limit" validate:"min=0,max=100"`
}

type ListPOIResponse struct {
	Items []ShowPOIResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ShowPOIResponse struct {
	Id           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Rating       float64         `json:"rating"`
	Amenities    []string        `json:"amenities"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	ReviewCount  int             `json:"review_count"`
	LastReviewAt *time.Time      `json:"last_review_at"`
}
