package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFilename   string    `gorm:"type:varchar(128)" json:"original_filename"`
	StructuredDataJSON string    `gorm:"type:text" json:"-"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt          time.Time `gorm:"type:timestamp;default:now();index" json:"created_at"`
	UpdatedAt          time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Analyses []Analysis `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Resume) TableName() string {
	return "resumes"
}

// StructuredData decodes the stored resume snapshot. An empty or broken
// column decodes to the zero value rather than an error.
func (r *Resume) StructuredData() StructuredResume {
	var data StructuredResume
	if r.StructuredDataJSON != "" {
		_ = json.Unmarshal([]byte(r.StructuredDataJSON), &data)
	}
	return data
}

type Analysis struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobDescription   string    `gorm:"type:text" json:"job_description"`
	AnalysisDataJSON string    `gorm:"type:text" json:"-"`
	ResumeID         uuid.UUID `gorm:"type:uuid;not null;index" json:"resume_id"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now();index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Resume Resume `gorm:"foreignKey:ResumeID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

func (a *Analysis) AnalysisData() AnalysisResult {
	var data AnalysisResult
	if a.AnalysisDataJSON != "" {
		_ = json.Unmarshal([]byte(a.AnalysisDataJSON), &data)
	}
	return data
}
