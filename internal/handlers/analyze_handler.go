package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumecraft/resume-tailor/internal/models"
	"resumecraft/resume-tailor/internal/repositories"
	"resumecraft/resume-tailor/internal/services"
)

type AnalyzeHandler struct {
	extractor   services.ExtractorService
	analyzer    services.AnalyzerService
	resumeRepo  repositories.ResumeRepository
	sessions    *SessionManager
	maxFileSize int64
}

func NewAnalyzeHandler(
	extractor services.ExtractorService,
	analyzer services.AnalyzerService,
	resumeRepo repositories.ResumeRepository,
	sessions *SessionManager,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		extractor:   extractor,
		analyzer:    analyzer,
		resumeRepo:  resumeRepo,
		sessions:    sessions,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /api/analyze. Strictly sequential: validate
// the upload, extract text, one model round trip, split, persist for
// authenticated callers, stage the session hand-off, respond with the full
// combined payload. Nothing is persisted or staged until every earlier
// step has succeeded.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	// Step 1: validate the upload
	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing form data.",
		})
	}

	jdText := strings.TrimSpace(c.FormValue("job_description"))
	if resumeFile.Filename == "" || jdText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file and job description are required.",
		})
	}

	if !h.extractor.AllowedFile(resumeFile.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Please upload a .pdf or .docx file.",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := resumeFile.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read the uploaded file.",
		})
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read the uploaded file.",
		})
	}

	// Step 2: extract plain text
	resumeText, err := h.extractor.ExtractText(resumeFile.Filename, data)
	if err != nil || resumeText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not parse the resume file.",
		})
	}

	// Step 3: one model round trip for analysis + parse
	combined, err := h.analyzer.GetCombinedAnalysis(c.Context(), resumeText, jdText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "An error occurred during AI processing.",
		})
	}

	// Step 4/5: persist for authenticated callers, both records in one
	// transaction
	if userID, ok := h.sessions.CurrentUserID(c); ok {
		structuredJSON, _ := json.Marshal(combined.StructuredResume)
		analysisJSON, _ := json.Marshal(combined.AnalysisResults)

		resume := &models.Resume{
			OriginalFilename:   resumeFile.Filename,
			StructuredDataJSON: string(structuredJSON),
			UserID:             userID,
		}
		analysis := &models.Analysis{
			JobDescription:   jdText,
			AnalysisDataJSON: string(analysisJSON),
		}

		if err := h.resumeRepo.CreateWithAnalysis(resume, analysis); err != nil {
			log.Printf("❌ Failed to persist analysis: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save the analysis.",
			})
		}
	}

	// Step 6: stage the hand-off for cover letter / rendering / export
	state := models.WorkflowState{
		ResumeText:       resumeText,
		JobDescription:   jdText,
		StructuredResume: combined.StructuredResume,
	}
	if err := h.sessions.StageWorkflow(c, state); err != nil {
		log.Printf("⚠️  Failed to stage session state: %v", err)
	}

	// Step 7: the caller gets both sub-objects back unmodified
	return c.JSON(combined)
}

// HandleWorkflow handles GET /api/workflow. Returns the staged state from
// the last analysis in this session.
func (h *AnalyzeHandler) HandleWorkflow(c *fiber.Ctx) error {
	state, ok := h.sessions.LoadWorkflow(c)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Your session may have expired. Please analyze a resume again.",
		})
	}
	return c.JSON(state)
}
