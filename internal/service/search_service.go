package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/events"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/intent"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/query"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/scoring"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/search"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/session"
)

type ISearchService interface {
	Search(ctx context.Context, ownerId string, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

// searchService runs the full conversational turn: intent classification,
// follow-up detection, resolution against previous results or fresh
// retrieval, ranking, time filtering, response assembly, session update.
type searchService struct {
	store            session.Store
	retriever        search.Retriever
	engine           *scoring.Engine
	assembler        *search.Assembler
	analyticsService IPublisherService
	log              logger.ILogger
}

func NewSearchService(
	store session.Store,
	retriever search.Retriever,
	engine *scoring.Engine,
	assembler *search.Assembler,
	analyticsService IPublisherService,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		store:            store,
		retriever:        retriever,
		engine:           engine,
		assembler:        assembler,
		analyticsService: analyticsService,
		log:              log,
	}
}

func (s *searchService) Search(ctx context.Context, ownerId string, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	started := time.Now()
	rawQuery := strings.TrimSpace(req.Query)
	now := time.Now()

	// Conversation context: either held by the caller or loaded from the
	// session store. Client-held mode never touches the store.
	clientHeld := req.ClientContext != nil
	var prevContext session.Context
	var sess *session.Session
	sessionId := req.SessionId

	if clientHeld {
		prevContext = session.Context{
			LastQuery:   req.ClientContext.LastQuery,
			LastResults: req.ClientContext.LastResults,
			SearchType:  req.ClientContext.SearchType,
		}
	} else {
		if sessionId == "" {
			id, err := s.store.Create(ctx, ownerId)
			if err != nil {
				return nil, err
			}
			sessionId = id
		}
		if existing, ok := s.store.Get(ctx, sessionId); ok {
			sess = existing
			prevContext = existing.Context
		}
	}

	previous := prevContext.LastResults

	// Pure classification over the raw query.
	dietary := intent.ClassifyDietary(rawQuery)
	general := intent.ClassifyGeneral(rawQuery)
	detection := query.Detect(rawQuery, previous)

	var ranked []scoring.ScoredCandidate
	if detection.IsFollowUp {
		// Follow-ups answer from what the user has already seen. No
		// retrieval round-trip, no re-ranking; the previous order stands.
		ranked = query.Resolve(detection.Reference, previous)
	} else {
		candidates, err := s.retriever.Retrieve(ctx, rawQuery, detection.SearchType)
		if err != nil {
			s.log.Error("search", "retrieval failed", map[string]interface{}{
				"query": rawQuery,
				"error": err.Error(),
			})
			degraded := s.assembler.Assemble(rawQuery, detection, general, dietary, nil, now)
			// Context stays as it was; a failed turn must not clobber it.
			degraded.Context = prevContext
			res := s.toResponse(degraded, sessionId, turnCount(sess))
			if clientHeld {
				res.SessionId = ""
				res.TurnCount = 0
			}
			return res, ErrRetrievalUnavailable
		}

		scoringCtx := scoring.Context{
			Dietary: dietary,
			General: general,
			Now:     now,
		}
		if req.Location != nil {
			scoringCtx.Location = &scoring.Location{
				Latitude:  req.Location.Latitude,
				Longitude: req.Location.Longitude,
			}
		}
		ranked = s.engine.Rank(candidates, scoringCtx)
	}

	assembled := s.assembler.Assemble(rawQuery, detection, general, dietary, ranked, now)

	newTurnCount := turnCount(sess) + 1
	if !clientHeld {
		err := s.store.Update(ctx, sessionId, session.Patch{
			Query:      rawQuery,
			SearchType: string(detection.SearchType),
			Results:    assembled.Context.LastResults,
			At:         now,
		})
		if err != nil {
			s.log.Warn("search", "session update failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	s.publishAnalytics(ctx, sessionId, ownerId, rawQuery, detection, len(assembled.Results), started)

	res := s.toResponse(assembled, sessionId, newTurnCount)
	if clientHeld {
		res.SessionId = ""
		res.TurnCount = 0
	}
	return res, nil
}

func (s *searchService) toResponse(assembled search.Response, sessionId string, turns int) *dto.SearchResponse {
	return &dto.SearchResponse{
		Results:        assembled.Results,
		SearchType:     assembled.SearchType,
		Interpretation: assembled.Interpretation,
		Context: dto.ClientContext{
			LastQuery:   assembled.Context.LastQuery,
			LastResults: assembled.Context.LastResults,
			SearchType:  assembled.Context.SearchType,
		},
		TextSummary: assembled.TextSummary,
		SessionId:   sessionId,
		TurnCount:   turns,
	}
}

func (s *searchService) publishAnalytics(ctx context.Context, sessionId, ownerId, rawQuery string, detection query.Detection, resultCount int, started time.Time) {
	if s.analyticsService == nil {
		return
	}
	evt := events.NewSearchPerformed(
		sessionId,
		ownerId,
		rawQuery,
		string(detection.SearchType),
		detection.IsFollowUp,
		resultCount,
		time.Since(started).Milliseconds(),
	)
	payload, err := json.Marshal(map[string]interface{}{
		"type":        evt.EventType(),
		"payload":     evt.Payload(),
		"occurred_at": evt.Timestamp().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	// Analytics is auxiliary; a publish failure never fails the turn.
	if err := s.analyticsService.Publish(ctx, payload); err != nil {
		s.log.Warn("search", "failed to publish analytics event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func turnCount(sess *session.Session) int {
	if sess == nil {
		return 0
	}
	return sess.TurnCount
}
