package controller

import (
	"io"

	"memory-map-be/internal/dto"
	"memory-map-be/internal/pkg/serverutils"
	"memory-map-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoryController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type memoryController struct {
	service service.IMemoryService
}

func NewMemoryController(service service.IMemoryService) IMemoryController {
	return &memoryController{service: service}
}

func (c *memoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memory/v1")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("search", c.Search)
}

// Create accepts either a JSON body or a multipart form with an optional
// "image" file part next to the memory fields.
func (c *memoryController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMemoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	image, err := c.readImage(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req, image)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create memory", res))
}

func (c *memoryController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.ListAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all memories", res))
}

func (c *memoryController) Search(ctx *fiber.Ctx) error {
	receiver := ctx.Query("receiver")

	res, err := c.service.SearchByReceiver(ctx.Context(), receiver)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search memories", res))
}

func (c *memoryController) readImage(ctx *fiber.Ctx) (*service.ImageUpload, error) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		// No multipart part named "image"; the memory is text-only.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, serverutils.NewValidationError("failed to open uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, serverutils.NewValidationError("failed to read uploaded image")
	}

	return &service.ImageUpload{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
