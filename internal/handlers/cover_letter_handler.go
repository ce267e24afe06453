package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resumecraft/resume-tailor/internal/models"
	"resumecraft/resume-tailor/internal/services"
)

type CoverLetterHandler struct {
	analyzer services.AnalyzerService
	sessions *SessionManager
}

func NewCoverLetterHandler(analyzer services.AnalyzerService, sessions *SessionManager) *CoverLetterHandler {
	return &CoverLetterHandler{
		analyzer: analyzer,
		sessions: sessions,
	}
}

// HandleGenerateCoverLetter handles POST /api/cover-letter. Inputs come
// from the session state staged by the last analysis; this operation never
// re-runs extraction or the combined call.
func (h *CoverLetterHandler) HandleGenerateCoverLetter(c *fiber.Ctx) error {
	state, ok := h.sessions.LoadWorkflow(c)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Your session may have expired. Please analyze a resume again.",
		})
	}

	coverLetter, err := h.analyzer.GenerateCoverLetter(c.Context(), state.ResumeText, state.JobDescription)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "An error occurred while generating the cover letter.",
		})
	}

	return c.JSON(models.CoverLetterResponse{CoverLetter: coverLetter})
}
