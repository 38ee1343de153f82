package service

import "errors"

var (
	// ErrSessionNotFound is returned when a caller asks for a session id
	// the store does not hold.
	ErrSessionNotFound = errors.New("session not found")

	// ErrRetrievalUnavailable marks an embedding or vector-search failure.
	// The search response alongside it is still well formed: zero results
	// with the caller's context unchanged.
	ErrRetrievalUnavailable = errors.New("retrieval backend unavailable")

	// ErrPOINotFound is returned when a POI id does not resolve.
	ErrPOINotFound = errors.New("poi not found")
)
