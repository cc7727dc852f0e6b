package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/GoldenFighter/contestboard/internal/models"
)

func TestNewSubmissionResponseText(t *testing.T) {
	submission := models.Submission{
		ID:             "sub-1",
		BoardID:        "board-1",
		OwnerEmail:     "user@example.com",
		Kind:           models.SubmissionKindText,
		SubmissionDate: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Prompt:         "my entry",
		Rating:         7,
		Scores:         datatypes.NewJSONType(models.ScoringCriteria{Overall: 70}),
		IsProcessed:    true,
	}

	response := NewSubmissionResponse(submission)

	require.Equal(t, "sub-1", response.ID)
	require.Equal(t, 7, response.Rating)
	require.Nil(t, response.ImageMetadata)
	require.NotNil(t, response.Scores)
	require.Equal(t, 70, response.Scores.Overall)
}

func TestNewSubmissionResponseUnprocessedHidesScores(t *testing.T) {
	submission := models.Submission{
		ID:            "sub-1",
		Kind:          models.SubmissionKindImage,
		ImageMetadata: datatypes.NewJSONType(models.ImageMetadata{FileName: "img_1.jpg", IsFromCamera: true}),
		IsProcessed:   false,
	}

	response := NewSubmissionResponse(submission)

	require.Nil(t, response.Scores)
	require.NotNil(t, response.ImageMetadata)
	require.Equal(t, "img_1.jpg", response.ImageMetadata.FileName)
	require.True(t, response.ImageMetadata.IsFromCamera)
}
