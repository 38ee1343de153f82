package contract

import (
	"context"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredPOI wraps a retrieved POI with its similarity score
type ScoredPOI struct {
	POI        *entity.Candidate
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type POIRepository interface {
	Create(ctx context.Context, poi *entity.Candidate) error
	CreateBulk(ctx context.Context, pois []*entity.Candidate) error
	Update(ctx context.Context, poi *entity.Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Embedding indexing. A POI carries one embedding per collection;
	// UpsertEmbedding replaces any existing row for (poi, collection).
	UpsertEmbedding(ctx context.Context, poiId uuid.UUID, collection string, document string, embedding []float32) error
	DeleteEmbeddingsByPOIId(ctx context.Context, poiId uuid.UUID) error
	CountEmbeddings(ctx context.Context, collection string) (int64, error)

	// SearchSimilarWithScore returns candidates with their similarity scores
	// for one collection, filtered by threshold, best match first.
	SearchSimilarWithScore(ctx context.Context, collection string, embedding []float32, limit int, threshold float64) ([]*ScoredPOI, error)
}
