package dto

import (
	"time"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// TextSubmissionRequest is the payload for a text contest entry.
type TextSubmissionRequest struct {
	Prompt  string `json:"prompt" validate:"required"`
	Context string `json:"context"`
}

// ImageSubmissionRequest carries the form fields accompanying an image
// upload. LastModified is the client-reported capture instant in unix
// milliseconds, as browsers expose it.
type ImageSubmissionRequest struct {
	Context      string `json:"context"`
	LastModified int64  `json:"last_modified" validate:"required,min=1"`
}

// SubmissionResponse is the API projection of a submission.
type SubmissionResponse struct {
	ID              string                  `json:"id"`
	BoardID         string                  `json:"board_id"`
	OwnerEmail      string                  `json:"owner_email"`
	Kind            string                  `json:"kind"`
	SubmissionDate  time.Time               `json:"submission_date"`
	Prompt          string                  `json:"prompt,omitempty"`
	ContextText     string                  `json:"context,omitempty"`
	ImageURL        string                  `json:"image_url,omitempty"`
	ImageMetadata   *models.ImageMetadata   `json:"image_metadata,omitempty"`
	Rating          int                     `json:"rating"`
	Summary         string                  `json:"summary,omitempty"`
	Reasoning       string                  `json:"reasoning,omitempty"`
	Risks           []string                `json:"risks,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	Scores          *models.ScoringCriteria `json:"scores,omitempty"`
	IsProcessed     bool                    `json:"is_processed"`
}

// NewSubmissionResponse converts a submission model to its API projection.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:              submission.ID,
		BoardID:         submission.BoardID,
		OwnerEmail:      submission.OwnerEmail,
		Kind:            submission.Kind,
		SubmissionDate:  submission.SubmissionDate,
		Prompt:          submission.Prompt,
		ContextText:     submission.ContextText,
		ImageURL:        submission.ImageURL,
		Rating:          submission.Rating,
		Summary:         submission.Summary,
		Reasoning:       submission.Reasoning,
		Risks:           submission.Risks,
		Recommendations: submission.Recommendations,
		IsProcessed:     submission.IsProcessed,
	}

	if submission.Kind == models.SubmissionKindImage {
		meta := submission.ImageMetadata.Data()
		response.ImageMetadata = &meta
	}

	if submission.IsProcessed {
		scores := submission.Scores.Data()
		response.Scores = &scores
	}

	return response
}

// NewSubmissionResponseSlice converts a slice of submissions.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}
	return responses
}
