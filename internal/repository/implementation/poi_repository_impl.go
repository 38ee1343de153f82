package implementation

import (
	"context"
	"errors"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/mapper"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/model"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type POIRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.POIMapper
}

func NewPOIRepository(db *gorm.DB) contract.POIRepository {
	return &POIRepositoryImpl{
		db:     db,
		mapper: mapper.NewPOIMapper(),
	}
}

func (r *POIRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *POIRepositoryImpl) Create(ctx context.Context, poi *entity.Candidate) error {
	m := r.mapper.ToModel(poi)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*poi = *r.mapper.ToCandidate(m)
	return nil
}

func (r *POIRepositoryImpl) CreateBulk(ctx context.Context, pois []*entity.Candidate) error {
	models := make([]*model.POI, len(pois))
	for i, p := range pois {
		models[i] = r.mapper.ToModel(p)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		*pois[i] = *r.mapper.ToCandidate(m)
	}
	return nil
}

func (r *POIRepositoryImpl) Update(ctx context.Context, poi *entity.Candidate) error {
	m := r.mapper.ToModel(poi)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*poi = *r.mapper.ToCandidate(m)
	return nil
}

func (r *POIRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.POI{}, id).Error
}

func (r *POIRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error) {
	var m model.POI
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToCandidate(&m), nil
}

func (r *POIRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error) {
	var models []*model.POI
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToCandidates(models), nil
}

func (r *POIRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.POI{}).Count(&count).Error
	return count, err
}

func (r *POIRepositoryImpl) UpsertEmbedding(ctx context.Context, poiId uuid.UUID, collection string, document string, embedding []float32) error {
	m := &model.POIEmbedding{
		POIId:          poiId,
		Collection:     collection,
		Document:       document,
		EmbeddingValue: pgvector.NewVector(embedding),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poi_id"}, {Name: "collection"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
		}).
		Create(m).Error
}

func (r *POIRepositoryImpl) DeleteEmbeddingsByPOIId(ctx context.Context, poiId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("poi_id = ?", poiId).Delete(&model.POIEmbedding{}).Error
}

func (r *POIRepositoryImpl) CountEmbeddings(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.POIEmbedding{}).
		Where("collection = ?", collection).
		Count(&count).Error
	return count, err
}

// SearchSimilarWithScore retrieves POIs by cosine similarity within one collection.
// Cosine distance in pgvector is 1 - cosine_similarity, so we compute
// 1 - (embedding_value <=> query_vector) and filter on the threshold.
func (r *POIRepositoryImpl) SearchSimilarWithScore(ctx context.Context, collection string, embedding []float32, limit int, threshold float64) ([]*contract.ScoredPOI, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.POI
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("poi_embeddings").
		Select("pois.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN pois ON pois.id = poi_embeddings.poi_id").
		Where("poi_embeddings.collection = ?", collection).
		Where("poi_embeddings.deleted_at IS NULL").
		Where("pois.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredPOI, len(results))
	for i, res := range results {
		candidate := r.mapper.ToCandidate(&res.POI)
		candidate.Relevance = res.Similarity
		scored[i] = &contract.ScoredPOI{
			POI:        candidate,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
