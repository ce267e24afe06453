package models

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ExportRequest struct {
	HTML string `json:"html"`
}

type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

// WorkflowState is the hand-off between the analyze pipeline and the
// operations that run after it (cover letter, template rendering, export).
// It is written once per analysis and read back from the session.
type WorkflowState struct {
	ResumeText       string           `json:"resume_text"`
	JobDescription   string           `json:"job_description"`
	StructuredResume StructuredResume `json:"structured_resume"`
}

type ResumeSummary struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	AnalysisCount    int       `json:"analysis_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type AnalysisResponse struct {
	ID             string         `json:"id"`
	ResumeID       string         `json:"resume_id"`
	JobDescription string         `json:"job_description"`
	Analysis       AnalysisResult `json:"analysis"`
	CreatedAt      time.Time      `json:"created_at"`
}
