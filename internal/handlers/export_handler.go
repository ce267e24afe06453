package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"resumecraft/resume-tailor/internal/models"
	"resumecraft/resume-tailor/internal/services"
)

const docxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type ExportHandler struct {
	exporter services.ExporterService
}

func NewExportHandler(exporter services.ExporterService) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// HandleExportDocx handles POST /api/export/docx. The body carries the
// rendered resume HTML; the response streams back a Word document.
func (h *ExportHandler) HandleExportDocx(c *fiber.Ctx) error {
	var req models.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.HTML == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No HTML content received.",
		})
	}

	document, err := h.exporter.FromHTML(req.HTML)
	if err != nil {
		log.Printf("❌ DOCX export failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate the document.",
		})
	}

	c.Set(fiber.HeaderContentType, docxMIMEType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume_edited.docx"`)
	return c.Send(document)
}
