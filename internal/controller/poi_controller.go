package controller

import (
	"errors"

	"github.com/FrankSpooren/HolidaiButler-sub009/internal/dto"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/pkg/serverutils"
	"github.com/FrankSpooren/HolidaiButler-sub009/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPOIController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type poiController struct {
	poiService service.IPOIService
}

func NewPOIController(poiService service.IPOIService) IPOIController {
	return &poiController{
		poiService: poiService,
	}
}

func (c *poiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/poi/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *poiController) List(ctx *fiber.Ctx) error {
	var req dto.ListPOIRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.poiService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list poi", res))
}

func (c *poiController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePOIRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.poiService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create poi", res))
}

func (c *poiController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid poi id")
	}

	res, err := c.poiService.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPOINotFound) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "POI not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show poi", res))
}

func (c *poiController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid poi id")
	}

	if err := c.poiService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete poi", nil))
}
