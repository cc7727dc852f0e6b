package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/pkg/ai"
)

func stringPtr(s string) *string { return &s }

func TestNormalizeScoresDefaults(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{}, "")

	require.Equal(t, models.ScoringCriteria{
		Creativity:  50,
		Technical:   50,
		Composition: 50,
		Relevance:   50,
		Originality: 50,
		Overall:     50,
	}, scores)
}

func TestNormalizeScoresTechnicalFromConfidence(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{
		Objects: []ai.DetectedObject{
			{Label: "dog", Confidence: 0.9},
			{Label: "ball", Confidence: 0.7},
		},
	}, "")

	require.Equal(t, 80, scores.Technical)
}

func TestNormalizeScoresQualityFloorAndCeiling(t *testing.T) {
	// High quality lifts technical to at least 80 but never lowers a higher
	// confidence-derived value.
	scores := NormalizeScores(ai.JudgeResponse{
		Objects: []ai.DetectedObject{{Label: "dog", Confidence: 0.95}},
		Quality: stringPtr("high"),
	}, "")
	require.Equal(t, 95, scores.Technical)

	scores = NormalizeScores(ai.JudgeResponse{Quality: stringPtr("high")}, "")
	require.Equal(t, 80, scores.Technical)

	// Low quality caps technical at 40.
	scores = NormalizeScores(ai.JudgeResponse{
		Objects: []ai.DetectedObject{{Label: "dog", Confidence: 0.9}},
		Quality: stringPtr("LOW"),
	}, "")
	require.Equal(t, 40, scores.Technical)
}

func TestNormalizeScoresComposition(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{
		Composition: &ai.CompositionSignals{RuleOfThirds: true, Symmetry: true, LeadingLines: true},
	}, "")

	// 50 + 20 + 15 + 15, clamped.
	require.Equal(t, 100, scores.Composition)
}

func TestNormalizeScoresPositiveVocabulary(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{
		Tags:  []string{"creative", "blurry"},
		Moods: []string{"strikingly bold"},
	}, "")

	// Two matching descriptors: creativity 50+10+10, originality 50+8+8.
	require.Equal(t, 70, scores.Creativity)
	require.Equal(t, 66, scores.Originality)
}

func TestNormalizeScoresCreativityClampsAtHundred(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{
		Tags: []string{"creative", "unique", "original", "artistic", "innovative", "imaginative", "expressive"},
	}, "")

	require.Equal(t, 100, scores.Creativity)
	require.Equal(t, 100, scores.Originality)
}

func TestNormalizeScoresRelevance(t *testing.T) {
	response := ai.JudgeResponse{
		Objects: []ai.DetectedObject{{Label: "golden retriever puppy", Confidence: 0.8}},
	}

	scores := NormalizeScores(response, "cutest puppy contest")
	require.Equal(t, 85, scores.Relevance)

	scores = NormalizeScores(response, "best sunset photo")
	require.Equal(t, 20, scores.Relevance)

	// A theme with only stopwords and short words leaves relevance neutral.
	scores = NormalizeScores(response, "the best for you")
	require.Equal(t, 50, scores.Relevance)

	// No detected objects leaves relevance neutral regardless of theme.
	scores = NormalizeScores(ai.JudgeResponse{}, "cutest puppy contest")
	require.Equal(t, 50, scores.Relevance)
}

func TestNormalizeScoresOverallIsRoundedMean(t *testing.T) {
	scores := NormalizeScores(ai.JudgeResponse{
		Objects:     []ai.DetectedObject{{Label: "puppy", Confidence: 0.9}},
		Composition: &ai.CompositionSignals{RuleOfThirds: true},
		Tags:        []string{"creative"},
	}, "cutest puppy contest")

	require.Equal(t, 60, scores.Creativity)
	require.Equal(t, 90, scores.Technical)
	require.Equal(t, 70, scores.Composition)
	require.Equal(t, 85, scores.Relevance)
	require.Equal(t, 58, scores.Originality)

	// (60 + 90 + 70 + 85 + 58) / 5 = 72.6, rounded.
	require.Equal(t, 73, scores.Overall)
}

func TestRescaleRating(t *testing.T) {
	require.Equal(t, 73, RescaleRating(73, 100))
	require.Equal(t, 7, RescaleRating(73, 10))
	require.Equal(t, 4, RescaleRating(73, 5))
	require.Equal(t, 37, RescaleRating(73, 50))

	// A missing scale defaults to 100.
	require.Equal(t, 73, RescaleRating(73, 0))
}

func TestScoreNormalizerThemesQuestions(t *testing.T) {
	judge := &fakeJudge{response: ai.JudgeResponse{Summary: "fine"}}
	normalizer := NewScoreNormalizer(judge, testLogger())

	result, err := normalizer.Score(context.Background(), models.ContestTypePhotography, "sunset", "https://img.example.com/1.jpg", "", []string{"lighting"})
	require.NoError(t, err)
	require.Equal(t, "fine", result.Summary)

	require.Len(t, judge.requests, 1)
	request := judge.requests[0]
	require.Equal(t, "image_analysis", request.Mode)
	require.Equal(t, []string{"lighting"}, request.Criteria)
	for _, question := range request.Questions {
		require.NotContains(t, question, "contest")
		require.Contains(t, question, "sunset")
	}
}

func TestScoreNormalizerUnknownTypeFallsBack(t *testing.T) {
	judge := &fakeJudge{}
	normalizer := NewScoreNormalizer(judge, testLogger())

	_, err := normalizer.Score(context.Background(), "sculpture", "", "", "clay figure", nil)
	require.NoError(t, err)
	require.Equal(t, "general_analysis", judge.requests[0].Mode)
}

func TestScoreNormalizerPropagatesJudgeError(t *testing.T) {
	judgeErr := errors.New("upstream timeout")
	normalizer := NewScoreNormalizer(&fakeJudge{err: judgeErr}, testLogger())

	_, err := normalizer.Score(context.Background(), models.ContestTypeArt, "", "", "poem", nil)
	require.ErrorIs(t, err, judgeErr)
}
