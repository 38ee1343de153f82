package controller

import (
	"errors"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/serverutils"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	ownerId, ok := ctx.Locals("user_id").(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
	}

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.Context(), ownerId, &req)
	if err != nil {
		if errors.Is(err, service.ErrRetrievalUnavailable) {
			// Still a well-formed payload: zero results, context preserved.
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(serverutils.ErrorResponseWithData(fiber.StatusServiceUnavailable, "Search backend unavailable", res))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search", res))
}
