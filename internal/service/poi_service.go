package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/logger"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"

	"github.com/google/uuid"
)

type IPOIService interface {
	Create(ctx context.Context, req *dto.CreatePOIRequest) (*dto.CreatePOIResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowPOIResponse, error)
	List(ctx context.Context, req *dto.ListPOIRequest) (*dto.ListPOIResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

const (
	defaultPOIPageSize = 20
	maxPOIPageSize     = 100
)

type poiService struct {
	poiRepo          contract.POIRepository
	publisherService IPublisherService
	log              logger.ILogger
}

func NewPOIService(poiRepo contract.POIRepository, publisherService IPublisherService, log logger.ILogger) IPOIService {
	return &poiService{
		poiRepo:          poiRepo,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *poiService) Create(ctx context.Context, req *dto.CreatePOIRequest) (*dto.CreatePOIResponse, error) {
	poi := entity.Candidate{
		Id:           uuid.New(),
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Rating:       req.Rating,
		Amenities:    req.Amenities,
		OpeningHours: req.OpeningHours,
		ReviewCount:  req.ReviewCount,
		LastReviewAt: req.LastReviewAt,
	}

	if err := s.poiRepo.Create(ctx, &poi); err != nil {
		return nil, err
	}

	// Hand off embedding to the indexing consumer; the write itself is done.
	msgPayload := dto.PublishIndexPOIMessage{POIId: poi.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.log.Warn("poi", "failed to enqueue poi for indexing", map[string]interface{}{
			"poi_id": poi.Id.String(),
			"error":  err.Error(),
		})
	}

	return &dto.CreatePOIResponse{Id: poi.Id}, nil
}

func (s *poiService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowPOIResponse, error) {
	poi, err := s.poiRepo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if poi == nil {
		return nil, ErrPOINotFound
	}

	return &dto.ShowPOIResponse{
		Id:           poi.Id,
		Title:        poi.Title,
		Category:     poi.Category,
		Description:  poi.Description,
		Latitude:     poi.Latitude,
		Longitude:    poi.Longitude,
		Rating:       poi.Rating,
		Amenities:    poi.Amenities,
		OpeningHours: poi.OpeningHours,
		ReviewCount:  poi.ReviewCount,
		LastReviewAt: poi.LastReviewAt,
	}, nil
}

// List returns a filtered, rating-ordered page of POIs. Total counts the
// filtered set before pagination.
func (s *poiService) List(ctx context.Context, req *dto.ListPOIRequest) (*dto.ListPOIResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPOIPageSize
	}
	if limit > maxPOIPageSize {
		limit = maxPOIPageSize
	}

	var filters []specification.Specification
	if req.Category != "" {
		filters = append(filters, specification.ByCategory{Category: req.Category})
	}
	if req.MinRating > 0 {
		filters = append(filters, specification.ByMinRating{Rating: req.MinRating})
	}

	total, err := s.poiRepo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "rating", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	pois, err := s.poiRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ShowPOIResponse, 0, len(pois))
	for _, poi := range pois {
		items = append(items, dto.ShowPOIResponse{
			Id:           poi.Id,
			Title:        poi.Title,
			Category:     poi.Category,
			Description:  poi.Description,
			Latitude:     poi.Latitude,
			Longitude:    poi.Longitude,
			Rating:       poi.Rating,
			Amenities:    poi.Amenities,
			OpeningHours: poi.OpeningHours,
			ReviewCount:  poi.ReviewCount,
			LastReviewAt: poi.LastReviewAt,
		})
	}

	return &dto.ListPOIResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *poiService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.poiRepo.DeleteEmbeddingsByPOIId(ctx, id); err != nil {
		return err
	}
	if err := s.poiRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("poi", "poi deleted", map[string]interface{}{
		"poi_id":     id.String(),
		"deleted_at": time.Now().Format(time.RFC3339),
	})
	return nil
}
