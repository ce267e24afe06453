package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCombinedPrompt creates the single prompt that elicits both the match
// analysis and the parsed resume structure in one round trip. Keeping this
// as one call is what lets the analyze pipeline stay at a single model
// round trip per request.
func (pb *PromptBuilder) BuildCombinedPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are an expert ATS and a highly accurate resume parsing system.
Your task is to analyze the following resume and job description, and also parse the resume's structure.
Provide a single, detailed JSON object as your response. Do not include any explanatory text before or after the JSON object.

The JSON object must have two top-level keys: "analysis_results" and "structured_resume".

1. The "analysis_results" object must contain:
  - "match_score": An integer from 0-100.
  - "missing_keywords": A list of strings.
  - "resume_suggestions": A list of objects, each with "original" and "rewritten" keys.
  - "cover_letter_themes": A list of strings.

2. The "structured_resume" object must contain:
  - "full_name": "string"
  - "contact_info": { "email": "string", "phone": "string", "linkedin": "string", "address": "string" }
  - "summary": "string"
  - "work_experience": [{ "job_title": "string", "company": "string", "location": "string", "dates": "string", "responsibilities": ["string", ...] }]
  - "education": [{ "degree": "string", "institution": "string", "location": "string", "graduation_date": "string" }]
  - "skills": ["string", ...]

Job Description:
`+"```"+`
%s
`+"```"+`

Resume Text:
`+"```"+`
%s
`+"```"+`

Now, provide the complete analysis and parsing in the specified single JSON format.`,
		jdText, resumeText)
}

// BuildCoverLetterPrompt creates the prompt for a complete cover letter
// grounded in the resume against the job description's requirements.
func (pb *PromptBuilder) BuildCoverLetterPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are a professional career writer and hiring manager.
Your task is to write a complete, compelling, and professional cover letter based on the provided resume and job description.

Instructions:
1. The tone must be professional, confident, and enthusiastic.
2. The letter must be structured with a clear introduction, body, and conclusion.
3. In the body, you must connect specific experiences and skills from the resume directly to the key requirements mentioned in the job description. Do not just list skills; explain how they apply.
4. Keep the letter concise, ideally around 3-4 paragraphs.
5. Do not use placeholders like "[Company Name]" or "[Your Name]". Write a generic but complete letter that the user can easily edit. Start with "Dear Hiring Manager,".

**Job Description:**
`+"```"+`
%s
`+"```"+`

**Resume Text:**
`+"```"+`
%s
`+"```"+`

Now, write the complete cover letter.`,
		jdText, resumeText)
}
