package controller

import (
	"memory-map-be/internal/pkg/serverutils"
	"memory-map-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGeocodeController interface {
	RegisterRoutes(r fiber.Router)
	Suggest(ctx *fiber.Ctx) error
	Retrieve(ctx *fiber.Ctx) error
}

type geocodeController struct {
	service service.IGeocodeService
}

func NewGeocodeController(service service.IGeocodeService) IGeocodeController {
	return &geocodeController{service: service}
}

func (c *geocodeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/geocode/v1")
	h.Get("suggest", c.Suggest)
	h.Get("retrieve/:id", c.Retrieve)
}

func (c *geocodeController) Suggest(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	sessionToken := ctx.Query("session_token")
	if sessionToken == "" {
		return serverutils.NewValidationError("session_token is required")
	}

	res, err := c.service.Suggest(ctx.Context(), query, sessionToken)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get suggestions", res))
}

func (c *geocodeController) Retrieve(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	sessionToken := ctx.Query("session_token")
	if sessionToken == "" {
		return serverutils.NewValidationError("session_token is required")
	}

	res, err := c.service.Retrieve(ctx.Context(), id, sessionToken)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retrieve place", res))
}
