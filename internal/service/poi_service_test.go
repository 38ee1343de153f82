package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/entity"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/contract"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/repository/specification"
)

type fakePOIRepo struct {
	pois       []*entity.Candidate
	total      int64
	countSpecs []specification.Specification
	findSpecs  []specification.Specification
	created    []*entity.Candidate
}

func (f *fakePOIRepo) Create(_ context.Context, poi *entity.Candidate) error {
	f.created = append(f.created, poi)
	return nil
}

func (f *fakePOIRepo) CreateBulk(_ context.Context, _ []*entity.Candidate) error { return nil }
func (f *fakePOIRepo) Update(_ context.Context, _ *entity.Candidate) error       { return nil }
func (f *fakePOIRepo) Delete(_ context.Context, _ uuid.UUID) error               { return nil }

func (f *fakePOIRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Candidate, error) {
	if len(f.pois) == 0 {
		return nil, nil
	}
	return f.pois[0], nil
}

func (f *fakePOIRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Candidate, error) {
	f.findSpecs = specs
	return f.pois, nil
}

func (f *fakePOIRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	f.countSpecs = specs
	return f.total, nil
}

func (f *fakePOIRepo) UpsertEmbedding(_ context.Context, _ uuid.UUID, _ string, _ string, _ []float32) error {
	return nil
}
func (f *fakePOIRepo) DeleteEmbeddingsByPOIId(_ context.Context, _ uuid.UUID) error { return nil }
func (f *fakePOIRepo) CountEmbeddings(_ context.Context, _ string) (int64, error)   { return 0, nil }
func (f *fakePOIRepo) SearchSimilarWithScore(_ context.Context, _ string, _ []float32, _ int, _ float64) ([]*contract.ScoredPOI, error) {
	return nil, nil
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestListBuildsFiltersOrderingAndPagination(t *testing.T) {
	repo := &fakePOIRepo{
		total: 42,
		pois:  []*entity.Candidate{{Id: uuid.New(), Title: "Casa Pepe", Category: "restaurant", Rating: 4.5}},
	}
	svc := NewPOIService(repo, &capturingPublisher{}, nopLogger{})

	res, err := svc.List(context.Background(), &dto.ListPOIRequest{
		Category:  "restaurant",
		MinRating: 4,
		Page:      3,
		Limit:     10,
	})
	require.NoError(t, err)

	require.Len(t, repo.countSpecs, 2)
	assert.Equal(t, specification.ByCategory{Category: "restaurant"}, repo.countSpecs[0])
	assert.Equal(t, specification.ByMinRating{Rating: 4}, repo.countSpecs[1])

	require.Len(t, repo.findSpecs, 4)
	assert.Equal(t, specification.OrderBy{Field: "rating", Desc: true}, repo.findSpecs[2])
	assert.Equal(t, specification.Pagination{Limit: 10, Offset: 20}, repo.findSpecs[3])

	assert.Equal(t, int64(42), res.Total)
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 10, res.Limit)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Casa Pepe", res.Items[0].Title)
}

func TestListDefaultsWithoutFilters(t *testing.T) {
	repo := &fakePOIRepo{}
	svc := NewPOIService(repo, &capturingPublisher{}, nopLogger{})

	res, err := svc.List(context.Background(), &dto.ListPOIRequest{})
	require.NoError(t, err)

	assert.Empty(t, repo.countSpecs)
	require.Len(t, repo.findSpecs, 2)
	assert.Equal(t, specification.Pagination{Limit: 20, Offset: 0}, repo.findSpecs[1])
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
	assert.Empty(t, res.Items)
}

func TestCreateEnqueuesIndexMessage(t *testing.T) {
	repo := &fakePOIRepo{}
	pub := &capturingPublisher{}
	svc := NewPOIService(repo, pub, nopLogger{})

	res, err := svc.Create(context.Background(), &dto.CreatePOIRequest{
		Title:    "Cafe Luna",
		Category: "cafe",
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.Len(t, pub.payloads, 1)
	assert.Contains(t, string(pub.payloads[0]), res.Id.String())
}
