package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumecraft/resume-tailor/internal/models"
	"resumecraft/resume-tailor/internal/repositories"
)

type DashboardHandler struct {
	resumeRepo repositories.ResumeRepository
	sessions   *SessionManager
}

func NewDashboardHandler(resumeRepo repositories.ResumeRepository, sessions *SessionManager) *DashboardHandler {
	return &DashboardHandler{
		resumeRepo: resumeRepo,
		sessions:   sessions,
	}
}

// HandleListResumes handles GET /api/resumes. The caller's resumes, most
// recent first.
func (h *DashboardHandler) HandleListResumes(c *fiber.Ctx) error {
	userID, ok := h.sessions.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login required",
		})
	}

	resumes, err := h.resumeRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resumes",
		})
	}

	summaries := make([]models.ResumeSummary, 0, len(resumes))
	for _, resume := range resumes {
		summaries = append(summaries, models.ResumeSummary{
			ID:               resume.ID.String(),
			OriginalFilename: resume.OriginalFilename,
			AnalysisCount:    len(resume.Analyses),
			CreatedAt:        resume.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"resumes": summaries})
}

// HandleGetAnalysis handles GET /api/analyses/:id. Callers only ever see
// analyses hanging off their own resumes.
func (h *DashboardHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	userID, ok := h.sessions.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login required",
		})
	}

	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.resumeRepo.FindAnalysisByID(analysisID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Analysis not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analysis",
		})
	}

	if analysis.Resume.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	return c.JSON(models.AnalysisResponse{
		ID:             analysis.ID.String(),
		ResumeID:       analysis.ResumeID.String(),
		JobDescription: analysis.JobDescription,
		Analysis:       analysis.AnalysisData(),
		CreatedAt:      analysis.CreatedAt,
	})
}

// HandleDeleteResume handles DELETE /api/resumes/:id. The resume's
// analyses cascade with it.
func (h *DashboardHandler) HandleDeleteResume(c *fiber.Ctx) error {
	userID, ok := h.sessions.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login required",
		})
	}

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resume",
		})
	}

	if resume.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden",
		})
	}

	if err := h.resumeRepo.Delete(resumeID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete resume",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
