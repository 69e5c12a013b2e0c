package controller

import (
	"github.com/gofiber/fiber/v2"

	"docsearch-be/internal/pkg/apperror"
	"docsearch-be/internal/service"
)

// MaxUploadBytes is the documented per-file cap. The fiber body limit sits
// above it so this check, not the transport, produces the 400.
const MaxUploadBytes = 100 * 1024 * 1024

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Get("/documents", c.List)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Validation("file is required")
	}
	if fileHeader.Size > MaxUploadBytes {
		return apperror.Validation("file too large (max 100 MiB)")
	}
	category := ctx.FormValue("category")

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.service.Ingest(ctx.Context(), file, fileHeader.Filename, category)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context(), ctx.Query("category"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
