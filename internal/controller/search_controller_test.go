package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
)

type stubSearchService struct {
	res *dto.SearchResponse
	err error
}

func (s *stubSearchService) Search(_ context.Context, _ string, _ *dto.SearchRequest) (*dto.SearchResponse, error) {
	return s.res, s.err
}

func newSearchApp(svc *stubSearchService, locals map[string]interface{}) *fiber.App {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		for k, v := range locals {
			ctx.Locals(k, v)
		}
		return ctx.Next()
	})
	c := &searchController{searchService: svc}
	app.Post("/search", c.Search)
	return app
}

func TestSearchRejectsMissingUserIdentity(t *testing.T) {
	tests := []struct {
		name   string
		locals map[string]interface{}
	}{
		{name: "claim absent", locals: nil},
		{name: "claim not a string", locals: map[string]interface{}{"user_id": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newSearchApp(&stubSearchService{res: &dto.SearchResponse{}}, tt.locals)

			req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"query":"tapas"}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestSearchAcceptsAuthenticatedRequest(t *testing.T) {
	app := newSearchApp(
		&stubSearchService{res: &dto.SearchResponse{SearchType: "general"}},
		map[string]interface{}{"user_id": "owner-1"},
	)

	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"query":"tapas"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
