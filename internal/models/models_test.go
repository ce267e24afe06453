package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{Username: "susan", Email: "susan@example.com"}
	require.NoError(t, user.SetPassword("cat"))

	assert.NotEqual(t, "cat", user.PasswordHash)
	assert.True(t, user.CheckPassword("cat"))
	assert.False(t, user.CheckPassword("dog"))
}

func TestResumeStructuredDataRoundTrip(t *testing.T) {
	original := StructuredResume{
		FullName: "Test User",
		ContactInfo: ContactInfo{
			Email: "test@example.com",
		},
		Skills: []string{"Go"},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	resume := &Resume{StructuredDataJSON: string(raw)}
	assert.Equal(t, original, resume.StructuredData())
}

func TestResumeStructuredDataToleratesBadColumn(t *testing.T) {
	assert.Zero(t, (&Resume{}).StructuredData())
	assert.Zero(t, (&Resume{StructuredDataJSON: "{broken"}).StructuredData())
}

func TestAnalysisDataRoundTrip(t *testing.T) {
	original := AnalysisResult{
		MatchScore:      88,
		MissingKeywords: []string{"kubernetes"},
		ResumeSuggestions: []Suggestion{
			{Original: "did stuff", Rewritten: "delivered outcomes"},
		},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	analysis := &Analysis{AnalysisDataJSON: string(raw)}
	assert.Equal(t, original, analysis.AnalysisData())
}

func TestCombinedResponseDecodesPartialJSON(t *testing.T) {
	var combined CombinedResponse
	require.NoError(t, json.Unmarshal([]byte(`{"structured_resume":{"full_name":"Only Name"}}`), &combined))

	assert.Equal(t, "Only Name", combined.StructuredResume.FullName)
	assert.Zero(t, combined.AnalysisResults.MatchScore)
	assert.Nil(t, combined.AnalysisResults.MissingKeywords)
}
