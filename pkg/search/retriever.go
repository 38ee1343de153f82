package search

import (
	"context"
	"fmt"
	"time"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/embedding"
	"github.com/FrankSpooren/HolidaiButler-sub009/pkg/query"
)

// Embedding collections. Each POI is indexed once per collection with a
// document tuned to that retrieval mode.
const (
	CollectionGeneral    = "poi_general"
	CollectionSpecific   = "poi_specific"
	CollectionContextual = "poi_contextual"
)

// CollectionFor maps a detected search type to its embedding collection.
func CollectionFor(t query.SearchType) string {
	switch t {
	case query.SearchTypeSpecific:
		return CollectionSpecific
	case query.SearchTypeContextual:
		return CollectionContextual
	default:
		return CollectionGeneral
	}
}

// Retriever produces ranked-by-similarity candidates for a query.
type Retriever interface {
	Retrieve(ctx context.Context, text string, searchType query.SearchType) ([]entity.Candidate, error)
}

// VectorRetriever embeds the query text and pulls the nearest POIs from the
// collection matching the search type.
type VectorRetriever struct {
	provider  embedding.Provider
	repo      contract.POIRepository
	topK      int
	threshold float64
	timeout   time.Duration
}

func NewVectorRetriever(provider embedding.Provider, repo contract.POIRepository, topK int, threshold float64, timeout time.Duration) *VectorRetriever {
	if topK <= 0 {
		topK = 15
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &VectorRetriever{
		provider:  provider,
		repo:      repo,
		topK:      topK,
		threshold: threshold,
		timeout:   timeout,
	}
}

// Retrieve returns candidates ordered by similarity, best first. A provider
// or repository failure surfaces as an error so the caller can degrade
// without losing the session.
func (r *VectorRetriever) Retrieve(ctx context.Context, text string, searchType query.SearchType) ([]entity.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vector, err := r.provider.Generate(ctx, text, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.repo.SearchSimilarWithScore(ctx, CollectionFor(searchType), vector, r.topK, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	candidates := make([]entity.Candidate, 0, len(scored))
	for _, s := range scored {
		if s.POI == nil {
			continue
		}
		candidates = append(candidates, *s.POI)
	}
	return candidates, nil
}
