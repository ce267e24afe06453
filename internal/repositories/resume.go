package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumecraft/resume-tailor/internal/models"
)

type ResumeRepository interface {
	CreateWithAnalysis(resume *models.Resume, analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByUser(userID uuid.UUID) ([]models.Resume, error)
	FindAnalysisByID(id uuid.UUID) (*models.Analysis, error)
	Delete(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// CreateWithAnalysis writes the resume and its first analysis in one
// transaction. A resume row must never exist without the analysis that
// produced it, so a failure on either insert rolls back both.
func (r *resumeRepository) CreateWithAnalysis(resume *models.Resume, analysis *models.Analysis) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resume).Error; err != nil {
			return err
		}
		analysis.ResumeID = resume.ID
		if err := tx.Create(analysis).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save resume with analysis: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByUser returns the caller's resumes, most recent first, with
// analyses preloaded for the dashboard counts.
func (r *resumeRepository) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Preload("Analyses").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// FindAnalysisByID implements ResumeRepository. The parent resume is
// preloaded so callers can check ownership.
func (r *resumeRepository) FindAnalysisByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Preload("Resume").Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// Delete implements ResumeRepository. Analyses cascade at the database
// level.
func (r *resumeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
