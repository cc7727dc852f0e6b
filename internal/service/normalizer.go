package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/pkg/ai"
)

// positiveVocabulary are the sentiment words that boost creativity and
// originality when they appear in the judge's tags or mood descriptors.
var positiveVocabulary = []string{
	"creative", "unique", "original", "artistic", "innovative",
	"imaginative", "expressive", "striking", "inventive", "bold",
}

// themeStopwords are theme tokens too generic to count as an expected
// subject for the relevance check.
var themeStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "your": {}, "best": {},
	"contest": {}, "photo": {}, "image": {}, "picture": {}, "entry": {},
	"theme": {}, "most": {}, "this": {}, "that": {},
}

// ScoringResult is the normalized outcome of one judge call.
type ScoringResult struct {
	Scores          models.ScoringCriteria
	Summary         string
	Reasoning       string
	Risks           []string
	Recommendations []string
	Raw             json.RawMessage
	Duration        time.Duration
}

// ScoreNormalizer maps a contest type to a judging template, invokes the
// external judge, and extracts the five comparable sub-scores from whatever
// fields the response happens to carry.
type ScoreNormalizer struct {
	judge  ai.Judge
	logger zerolog.Logger
}

// NewScoreNormalizer constructs a normalizer around the judge collaborator.
func NewScoreNormalizer(judge ai.Judge, logger zerolog.Logger) *ScoreNormalizer {
	return &ScoreNormalizer{
		judge:  judge,
		logger: logger.With().Str("component", "score_normalizer").Logger(),
	}
}

// Score runs one judging pass. The judge call is fallible and possibly slow;
// it is awaited here and never retried. On any judge or parse failure the
// error is returned as-is and no scores are fabricated.
func (n *ScoreNormalizer) Score(ctx context.Context, contestType, theme, artifactRef, artifactText string, criteria []string) (ScoringResult, error) {
	if n.judge == nil {
		return ScoringResult{}, fmt.Errorf("judge unavailable")
	}

	template := TemplateFor(contestType, theme)

	start := time.Now()
	response, err := n.judge.Judge(ctx, ai.JudgeRequest{
		Mode:           template.Mode,
		ExpectedFields: template.ExpectedFields,
		Questions:      template.Questions,
		ArtifactRef:    artifactRef,
		ArtifactText:   artifactText,
		Criteria:       criteria,
	})
	duration := time.Since(start)
	if err != nil {
		return ScoringResult{}, err
	}

	scores := NormalizeScores(response, theme)

	n.logger.Debug().
		Int("overall", scores.Overall).
		Dur("judge_duration", duration).
		Msg("judge response normalized")

	return ScoringResult{
		Scores:          scores,
		Summary:         response.Summary,
		Reasoning:       response.Reasoning,
		Risks:           response.Risks,
		Recommendations: response.Recommendations,
		Raw:             response.Raw,
		Duration:        duration,
	}, nil
}

// NormalizeScores extracts the five sub-scores from a judge response. Every
// adjustment is followed by a clamp to [0,100]; the overall is recomputed
// from the clamped sub-scores and never trusted from the judge.
func NormalizeScores(response ai.JudgeResponse, theme string) models.ScoringCriteria {
	scores := models.ScoringCriteria{
		Creativity:  50,
		Technical:   50,
		Composition: 50,
		Relevance:   50,
		Originality: 50,
	}

	if len(response.Objects) > 0 {
		total := 0.0
		for _, object := range response.Objects {
			total += object.Confidence
		}
		scores.Technical = clampScore(int(math.Round(total / float64(len(response.Objects)) * 100)))
	}

	if response.Quality != nil {
		switch strings.ToLower(strings.TrimSpace(*response.Quality)) {
		case "high":
			scores.Technical = clampScore(maxInt(scores.Technical, 80))
		case "medium":
			scores.Technical = clampScore(maxInt(scores.Technical, 60))
		case "low":
			scores.Technical = clampScore(minInt(scores.Technical, 40))
		}
	}

	if response.Composition != nil {
		if response.Composition.RuleOfThirds {
			scores.Composition = clampScore(scores.Composition + 20)
		}
		if response.Composition.Symmetry {
			scores.Composition = clampScore(scores.Composition + 15)
		}
		if response.Composition.LeadingLines {
			scores.Composition = clampScore(scores.Composition + 15)
		}
	}

	descriptors := append(append([]string{}, response.Tags...), response.Moods...)
	for _, descriptor := range descriptors {
		if matchesPositiveVocabulary(descriptor) {
			scores.Creativity = clampScore(scores.Creativity + 10)
			scores.Originality = clampScore(scores.Originality + 8)
		}
	}

	subjects := themeSubjects(theme)
	if len(subjects) > 0 && len(response.Objects) > 0 {
		if subjectDetected(subjects, response.Objects) {
			scores.Relevance = clampScore(maxInt(scores.Relevance, 85))
		} else {
			scores.Relevance = clampScore(minInt(scores.Relevance, 20))
		}
	}

	scores.Overall = overallOf(scores)
	return scores
}

// RescaleRating maps the 0-100 overall onto the board's configured scale.
func RescaleRating(overall, maxScore int) int {
	if maxScore <= 0 {
		maxScore = 100
	}
	return int(math.Round(float64(overall) * float64(maxScore) / 100))
}

func overallOf(scores models.ScoringCriteria) int {
	sum := scores.Creativity + scores.Technical + scores.Composition + scores.Relevance + scores.Originality
	return clampScore(int(math.Round(float64(sum) / 5)))
}

func matchesPositiveVocabulary(descriptor string) bool {
	lower := strings.ToLower(descriptor)
	for _, word := range positiveVocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func themeSubjects(theme string) []string {
	fields := strings.FieldsFunc(strings.ToLower(theme), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	subjects := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < 4 {
			continue
		}
		if _, skip := themeStopwords[field]; skip {
			continue
		}
		subjects = append(subjects, field)
	}
	return subjects
}

func subjectDetected(subjects []string, objects []ai.DetectedObject) bool {
	for _, object := range objects {
		label := strings.ToLower(object.Label)
		for _, subject := range subjects {
			if strings.Contains(label, subject) {
				return true
			}
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
