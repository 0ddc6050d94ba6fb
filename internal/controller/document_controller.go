package controller

import (
	"io"

	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Get("/documents/status", c.Status)
	r.Delete("/clear-documents", c.Clear)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewValidationError("A file is required under the 'file' form field.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewValidationError("The uploaded file could not be read.")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return serverutils.NewValidationError("The uploaded file could not be read.")
	}

	res, err := c.documentService.Upload(ctx.Context(), fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	res, err := c.documentService.Status(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Clear(ctx *fiber.Ctx) error {
	res, err := c.documentService.Clear(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
