package dto

import (
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/search"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/session"
)

// ClientLocation is an optional user position used for distance scoring.
type ClientLocation struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ClientContext lets the caller hold conversation state themselves instead
// of using a server-side session.
type ClientContext struct {
	LastQuery   string                    `json:"last_query"`
	LastResults []scoring.ScoredCandidate `json:"last_results"`
	SearchType  string                    `json:"search_type"`
}

type SearchRequest struct {
	Query         string          `json:"query" validate:"required,min=1,max=500"`
	SessionId     string          `json:"session_id" validate:"omitempty,max=128"`
	Location      *ClientLocation `json:"location" validate:"omitempty"`
	ClientContext *ClientContext  `json:"client_context" validate:"omitempty"`
}

type SearchResponse struct {
	Results        []scoring.ScoredCandidate `json:"results"`
	SearchType     string                    `json:"search_type"`
	Interpretation search.Interpretation     `json:"query_interpretation"`
	Context        ClientContext             `json:"context"`
	TextSummary    string                    `json:"text_summary"`
	SessionId      string                    `json:"session_id,omitempty"`
	TurnCount      int                       `json:"turn_count,omitempty"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type ShowSessionResponse struct {
	Id           string         `json:"id"`
	OwnerId      string         `json:"owner_id"`
	History      []session.Turn `json:"history"`
	Context      ClientContext  `json:"context"`
	ShownPOIs    []string       `json:"shown_pois"`
	TurnCount    int            `json:"turn_count"`
	CreatedAt    time.Time      `json:"created_at"`
	LastAccessed time.Time      `json:"last_accessed"`
}

type SessionStatsResponse struct {
	ActiveSessions int64 `json:"active_sessions"`
}
