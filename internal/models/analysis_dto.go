package models

// The AI is asked for a single JSON object with two top-level keys. Neither
// key is guaranteed to be present and every nested field may be omitted, so
// all of these types must decode cleanly from partial JSON: missing keys
// fall back to zero values, never to an error.

type CombinedResponse struct {
	AnalysisResults  AnalysisResult   `json:"analysis_results"`
	StructuredResume StructuredResume `json:"structured_resume"`
}

type AnalysisResult struct {
	MatchScore        int          `json:"match_score"`
	MissingKeywords   []string     `json:"missing_keywords"`
	ResumeSuggestions []Suggestion `json:"resume_suggestions"`
	CoverLetterThemes []string     `json:"cover_letter_themes"`
}

type Suggestion struct {
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
}

type StructuredResume struct {
	FullName       string           `json:"full_name"`
	ContactInfo    ContactInfo      `json:"contact_info"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
}

type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Address  string `json:"address"`
}

type WorkExperience struct {
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Dates            string   `json:"dates"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduation_date"`
}
