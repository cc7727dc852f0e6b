package ai

import (
	"context"
	"encoding/json"
)

// JudgeRequest carries everything the external judge needs for one artifact:
// the analysis mode selected by the contest template, the structured fields
// the caller expects back, the rating questions (already themed), and a
// reference to the artifact under judgment.
type JudgeRequest struct {
	Mode           string
	ExpectedFields []string
	Questions      []string
	ArtifactRef    string
	ArtifactText   string
	Criteria       []string
}

// DetectedObject is one entry in the judge's object list. Confidence is in
// [0,1].
type DetectedObject struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// CompositionSignals are the boolean composition cues the judge may report.
type CompositionSignals struct {
	RuleOfThirds bool `json:"rule_of_thirds"`
	Symmetry     bool `json:"symmetry"`
	LeadingLines bool `json:"leading_lines"`
}

// JudgeResponse models the judge's output as explicit optional fields. The
// judge's shape is not guaranteed; every pointer or slice here may be absent
// and extraction code must treat that as a modeled case, not an error.
type JudgeResponse struct {
	Objects         []DetectedObject    `json:"objects,omitempty"`
	Quality         *string             `json:"quality,omitempty"`
	Composition     *CompositionSignals `json:"composition,omitempty"`
	Tags            []string            `json:"tags,omitempty"`
	Moods           []string            `json:"moods,omitempty"`
	Summary         string              `json:"summary,omitempty"`
	Reasoning       string              `json:"reasoning,omitempty"`
	Risks           []string            `json:"risks,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`

	// Raw is the verbatim response body, kept for persistence and audit.
	Raw json.RawMessage `json:"-"`
}

// Judge is the external judging collaborator. One call per submission; the
// engine never retries on its own.
type Judge interface {
	Judge(ctx context.Context, req JudgeRequest) (JudgeResponse, error)
}
