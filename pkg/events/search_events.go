package events

import "time"

// Event type codes emitted by the search core.
const (
	TypeSearchPerformed = "SEARCH_PERFORMED"
	TypeSessionExpired  = "SESSION_EXPIRED"
)

// NewSearchPerformed records one processed search turn for analytics.
func NewSearchPerformed(sessionId, ownerId, query, searchType string, isFollowUp bool, resultCount int, durationMs int64) Event {
	return BaseEvent{
		Type: TypeSearchPerformed,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"owner_id":     ownerId,
			"query":        query,
			"search_type":  searchType,
			"is_follow_up": isFollowUp,
			"result_count": resultCount,
			"duration_ms":  durationMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionExpired records a session removed by the idle sweep.
func NewSessionExpired(sessionId string, turnCount int) Event {
	return BaseEvent{
		Type: TypeSessionExpired,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"turn_count": turnCount,
		},
		OccurredAt: time.Now(),
	}
}
