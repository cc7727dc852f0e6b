package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJudgeResponse(t *testing.T) {
	content := `{
		"objects": [{"label": "dog", "confidence": 0.92}],
		"quality": "high",
		"composition": {"rule_of_thirds": true, "symmetry": false, "leading_lines": true},
		"tags": ["creative"],
		"summary": "a striking photo",
		"risks": []
	}`

	response, err := ParseJudgeResponse(content)
	require.NoError(t, err)

	require.Len(t, response.Objects, 1)
	require.Equal(t, "dog", response.Objects[0].Label)
	require.InDelta(t, 0.92, response.Objects[0].Confidence, 0.001)
	require.NotNil(t, response.Quality)
	require.Equal(t, "high", *response.Quality)
	require.NotNil(t, response.Composition)
	require.True(t, response.Composition.RuleOfThirds)
	require.True(t, response.Composition.LeadingLines)
	require.Equal(t, "a striking photo", response.Summary)
	require.JSONEq(t, content, string(response.Raw))
}

func TestParseJudgeResponsePartial(t *testing.T) {
	// A response carrying only a summary is a modeled case, not an error.
	response, err := ParseJudgeResponse(`{"summary": "sparse"}`)
	require.NoError(t, err)

	require.Empty(t, response.Objects)
	require.Nil(t, response.Quality)
	require.Nil(t, response.Composition)
	require.Equal(t, "sparse", response.Summary)
}

func TestParseJudgeResponseRejectsWrongShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the photo is great"},
		{"quality wrong type", `{"quality": 8}`},
		{"objects wrong type", `{"objects": "dog"}`},
		{"confidence wrong type", `{"objects": [{"label": "dog", "confidence": "high"}]}`},
		{"tags wrong type", `{"tags": "creative"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJudgeResponse(tt.content)
			require.Error(t, err)
		})
	}
}

func TestNewOpenAIJudgeRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIJudge(OpenAIConfig{})
	require.Error(t, err)
}

func TestNewOpenAIJudgeDefaults(t *testing.T) {
	judge, err := NewOpenAIJudge(OpenAIConfig{APIKey: "test-key"})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", judge.cfg.Model)
	require.Equal(t, 768, judge.cfg.MaxTokens)
}

func TestBuildJudgePrompt(t *testing.T) {
	prompt := buildJudgePrompt(JudgeRequest{
		ArtifactRef:  "https://img.example.com/1.jpg",
		ArtifactText: "taken at dawn",
		Criteria:     []string{"lighting", "framing"},
		Questions:    []string{"Rate the framing 1-10"},
	})

	require.Contains(t, prompt, "https://img.example.com/1.jpg")
	require.Contains(t, prompt, "taken at dawn")
	require.Contains(t, prompt, "- lighting")
	require.Contains(t, prompt, "- Rate the framing 1-10")
}

func TestJudgeSystemPrompt(t *testing.T) {
	prompt := judgeSystemPrompt(JudgeRequest{
		Mode:           "image_analysis",
		ExpectedFields: []string{"objects", "quality"},
	})

	require.True(t, strings.Contains(prompt, "image_analysis"))
	require.True(t, strings.Contains(prompt, "objects, quality"))
}
