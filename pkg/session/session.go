package session

import (
	"context"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
)

const (
	// MaxHistory bounds the conversation history; oldest turns are evicted.
	MaxHistory = 50
	// MaxLastResults caps the ranked results kept in the context snapshot.
	MaxLastResults = 5
)

// Turn is one processed query in the conversation history.
type Turn struct {
	Query       string    `json:"query"`
	SearchType  string    `json:"search_type"`
	ResultCount int       `json:"result_count"`
	At          time.Time `json:"at"`
}

// Context is the snapshot the next turn's detector consults. The same shape
// is returned to callers running in client-held-context mode.
type Context struct {
	LastQuery   string                    `json:"last_query"`
	LastResults []scoring.ScoredCandidate `json:"last_results"`
	SearchType  string                    `json:"search_type"`
}

// Session is the per-conversation state. The turn counter strictly increases
// once per processed query; history length never exceeds MaxHistory.
type Session struct {
	Id           string    `json:"id"`
	OwnerId      string    `json:"owner_id"`
	History      []Turn    `json:"history"`
	Context      Context   `json:"context"`
	ShownPOIs    []string  `json:"shown_pois"`
	TurnCount    int       `json:"turn_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Patch is the per-turn update applied to a session after a processed query.
type Patch struct {
	Query      string                    `json:"query"`
	SearchType string                    `json:"search_type"`
	Results    []scoring.ScoredCandidate `json:"results"`
	At         time.Time                 `json:"at"`
}

// clone returns a deep copy so a caller can hold a session across later
// writes without aliasing the cached slices.
func (s *Session) clone() *Session {
	copied := *s
	copied.History = append([]Turn(nil), s.History...)
	copied.ShownPOIs = append([]string(nil), s.ShownPOIs...)
	copied.Context.LastResults = append([]scoring.ScoredCandidate(nil), s.Context.LastResults...)
	return &copied
}

// Apply folds a patch into the session: bumps the turn counter, appends
// history (evicting the oldest beyond MaxHistory), replaces the context
// snapshot, and records newly shown POI ids.
func (s *Session) Apply(p Patch) {
	at := p.At
	if at.IsZero() {
		at = time.Now()
	}

	s.TurnCount++
	s.History = append(s.History, Turn{
		Query:       p.Query,
		SearchType:  p.SearchType,
		ResultCount: len(p.Results),
		At:          at,
	})
	if len(s.History) > MaxHistory {
		s.History = s.History[len(s.History)-MaxHistory:]
	}

	results := p.Results
	if len(results) > MaxLastResults {
		results = results[:MaxLastResults]
	}
	s.Context = Context{
		LastQuery:   p.Query,
		LastResults: results,
		SearchType:  p.SearchType,
	}

	seen := make(map[string]bool, len(s.ShownPOIs))
	for _, id := range s.ShownPOIs {
		seen[id] = true
	}
	for _, r := range results {
		id := r.Id.String()
		if !seen[id] {
			s.ShownPOIs = append(s.ShownPOIs, id)
			seen[id] = true
		}
	}

	s.LastAccessed = at
}

// normalize defaults fields that predate newer schema versions so that old
// records read back cleanly instead of failing.
func (s *Session) normalize() {
	if s.History == nil {
		s.History = []Turn{}
	}
	if s.ShownPOIs == nil {
		s.ShownPOIs = []string{}
	}
	if s.Context.LastResults == nil {
		s.Context.LastResults = []scoring.ScoredCandidate{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.LastAccessed
	}
}

// Expired summarizes one session removed by an idle sweep.
type Expired struct {
	Id        string
	TurnCount int
}

// Store is the per-conversation state store. Implementations must treat
// read-modify-write per session key as one logical step; concurrent updates
// to the same id follow last-write-wins (a conversation issues requests
// sequentially, so this race is best-effort territory).
type Store interface {
	Create(ctx context.Context, ownerId string) (string, error)
	Get(ctx context.Context, sessionId string) (*Session, bool)
	Update(ctx context.Context, sessionId string, patch Patch) error
	Delete(ctx context.Context, sessionId string) error
	CountActive(ctx context.Context) int
	ExpireOlderThan(ctx context.Context, age time.Duration) []Expired
}
