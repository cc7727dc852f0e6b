package dto

import (
	"time"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// BoardCreateRequest is the admin-facing payload for creating a board.
type BoardCreateRequest struct {
	Name                  string     `json:"name" validate:"required,max=255"`
	IsPublic              bool       `json:"is_public"`
	AllowedEmails         []string   `json:"allowed_emails" validate:"omitempty,dive,email"`
	ExpiresAt             *time.Time `json:"expires_at"`
	MaxSubmissionsPerUser *int       `json:"max_submissions_per_user" validate:"omitempty,min=0"`
	SubmissionFrequency   string     `json:"submission_frequency" validate:"omitempty,oneof=daily weekly monthly unlimited"`
	ContestType           string     `json:"contest_type" validate:"omitempty,max=32"`
	ContestPrompt         string     `json:"contest_prompt"`
	JudgingCriteria       []string   `json:"judging_criteria"`
	MaxScore              *int       `json:"max_score" validate:"omitempty,min=1"`
	AllowImageSubmissions bool       `json:"allow_image_submissions"`
	MaxImageSize          *int64     `json:"max_image_size" validate:"omitempty,min=1"`
	AllowedImageTypes     []string   `json:"allowed_image_types"`
}

// BoardUpdateRequest carries partial board mutations. Only the creator or an
// admin may apply them.
type BoardUpdateRequest struct {
	Name                  *string    `json:"name" validate:"omitempty,max=255"`
	IsPublic              *bool      `json:"is_public"`
	AllowedEmails         []string   `json:"allowed_emails" validate:"omitempty,dive,email"`
	IsActive              *bool      `json:"is_active"`
	ExpiresAt             *time.Time `json:"expires_at"`
	ClearExpiresAt        bool       `json:"clear_expires_at"`
	MaxSubmissionsPerUser *int       `json:"max_submissions_per_user" validate:"omitempty,min=0"`
	SubmissionFrequency   *string    `json:"submission_frequency" validate:"omitempty,oneof=daily weekly monthly unlimited"`
	ContestPrompt         *string    `json:"contest_prompt"`
	MaxScore              *int       `json:"max_score" validate:"omitempty,min=1"`
	AllowImageSubmissions *bool      `json:"allow_image_submissions"`
}

// BoardResponse is the API projection of a board.
type BoardResponse struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	CreatedBy             string     `json:"created_by"`
	IsPublic              bool       `json:"is_public"`
	AllowedEmails         []string   `json:"allowed_emails,omitempty"`
	IsActive              bool       `json:"is_active"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	MaxSubmissionsPerUser int        `json:"max_submissions_per_user"`
	SubmissionFrequency   string     `json:"submission_frequency"`
	ContestType           string     `json:"contest_type"`
	ContestPrompt         string     `json:"contest_prompt"`
	JudgingCriteria       []string   `json:"judging_criteria,omitempty"`
	MaxScore              int        `json:"max_score"`
	AllowImageSubmissions bool       `json:"allow_image_submissions"`
	MaxImageSize          int64      `json:"max_image_size"`
	AllowedImageTypes     []string   `json:"allowed_image_types,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// NewBoardResponse converts a board model to its API projection.
func NewBoardResponse(board models.Board) BoardResponse {
	return BoardResponse{
		ID:                    board.ID,
		Name:                  board.Name,
		CreatedBy:             board.CreatedBy,
		IsPublic:              board.IsPublic,
		AllowedEmails:         board.AllowedEmails,
		IsActive:              board.IsActive,
		ExpiresAt:             board.ExpiresAt,
		MaxSubmissionsPerUser: board.MaxSubmissionsPerUser,
		SubmissionFrequency:   board.SubmissionFrequency,
		ContestType:           board.ContestType,
		ContestPrompt:         board.ContestPrompt,
		JudgingCriteria:       board.JudgingCriteria,
		MaxScore:              board.MaxScore,
		AllowImageSubmissions: board.AllowImageSubmissions,
		MaxImageSize:          board.MaxImageSize,
		AllowedImageTypes:     board.AllowedImageTypes,
		CreatedAt:             board.CreatedAt,
	}
}

// NewBoardResponseSlice converts a slice of boards.
func NewBoardResponseSlice(boards []models.Board) []BoardResponse {
	responses := make([]BoardResponse, 0, len(boards))
	for _, board := range boards {
		responses = append(responses, NewBoardResponse(board))
	}
	return responses
}
