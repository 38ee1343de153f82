package service

import (
	"context"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/session"
)

type ISessionService interface {
	Create(ctx context.Context, ownerId string) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, sessionId string) (*dto.ShowSessionResponse, error)
	Delete(ctx context.Context, sessionId string) error
	Stats(ctx context.Context) (*dto.SessionStatsResponse, error)
}

type sessionService struct {
	store session.Store
}

func NewSessionService(store session.Store) ISessionService {
	return &sessionService{store: store}
}

func (s *sessionService) Create(ctx context.Context, ownerId string) (*dto.CreateSessionResponse, error) {
	id, err := s.store.Create(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{SessionId: id}, nil
}

func (s *sessionService) Show(ctx context.Context, sessionId string) (*dto.ShowSessionResponse, error) {
	sess, ok := s.store.Get(ctx, sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return &dto.ShowSessionResponse{
		Id:      sess.Id,
		OwnerId: sess.OwnerId,
		History: sess.History,
		Context: dto.ClientContext{
			LastQuery:   sess.Context.LastQuery,
			LastResults: sess.Context.LastResults,
			SearchType:  sess.Context.SearchType,
		},
		ShownPOIs:    sess.ShownPOIs,
		TurnCount:    sess.TurnCount,
		CreatedAt:    sess.CreatedAt,
		LastAccessed: sess.LastAccessed,
	}, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionId string) error {
	if _, ok := s.store.Get(ctx, sessionId); !ok {
		return ErrSessionNotFound
	}
	return s.store.Delete(ctx, sessionId)
}

func (s *sessionService) Stats(ctx context.Context) (*dto.SessionStatsResponse, error) {
	return &dto.SessionStatsResponse{
		ActiveSessions: int64(s.store.CountActive(ctx)),
	}, nil
}
