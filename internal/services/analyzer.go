package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"resumecraft/resume-tailor/internal/models"
)

// AnalyzerService is the single gateway to the generative model. It owns
// prompt construction, response cleanup, and parsing; callers get either a
// typed result or a sentinel-wrapped error, never a raw client failure.
type AnalyzerService interface {
	GetCombinedAnalysis(ctx context.Context, resumeText, jdText string) (*models.CombinedResponse, error)
	GenerateCoverLetter(ctx context.Context, resumeText, jdText string) (string, error)
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(gemini GeminiService) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// GetCombinedAnalysis implements AnalyzerService. One model round trip
// yields both the match analysis and the parsed resume structure. Either
// top-level key may be missing from the model's output; absent keys decode
// to empty sub-objects rather than failing.
func (a *analyzerService) GetCombinedAnalysis(ctx context.Context, resumeText, jdText string) (*models.CombinedResponse, error) {
	prompt := a.promptBuilder.BuildCombinedPrompt(resumeText, jdText)

	raw, err := a.gemini.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("❌ Combined analysis call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	combined, err := ParseCombinedResponse(raw)
	if err != nil {
		log.Printf("❌ Failed to parse combined analysis response: %v", err)
		return nil, err
	}

	return combined, nil
}

// GenerateCoverLetter implements AnalyzerService. The model's text comes
// back unmodified; there is no JSON contract on this variant.
func (a *analyzerService) GenerateCoverLetter(ctx context.Context, resumeText, jdText string) (string, error) {
	prompt := a.promptBuilder.BuildCoverLetterPrompt(resumeText, jdText)

	text, err := a.gemini.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("❌ Cover letter call failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	return text, nil
}

// ParseCombinedResponse cleans the raw model output and decodes it into the
// two-keyed combined shape. Pure function: identical input always yields
// the identical analysis/resume split.
func ParseCombinedResponse(raw string) (*models.CombinedResponse, error) {
	cleaned := CleanJSON(raw)

	var combined models.CombinedResponse
	if err := json.Unmarshal([]byte(cleaned), &combined); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAIResponse, err)
	}

	return &combined, nil
}

// CleanJSON strips the markdown code fences LLMs like to wrap JSON in:
// an opening ```json or bare ``` and the closing ```.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
