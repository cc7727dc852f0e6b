package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission frequency policies a board may enforce.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyUnlimited = "unlimited"
)

// Contest types known to the score normalizer. Unknown values fall back to
// the general template.
const (
	ContestTypePhotography = "photography"
	ContestTypeArt         = "art"
	ContestTypeDesign      = "design"
	ContestTypeDocument    = "document"
	ContestTypeGeneral     = "general"
)

// DefaultMaxSubmissionsPerUser is the per-user cap applied when a board does
// not configure one, and the conservative fallback when a board lookup fails.
const DefaultMaxSubmissionsPerUser = 2

// Board is a contest board users submit entries to. Access and submission
// policy live on the board record itself; boards are never hard-deleted.
type Board struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	CreatedBy string `gorm:"size:255;not null;index" json:"created_by"`

	IsPublic      bool                        `json:"is_public"`
	AllowedEmails datatypes.JSONSlice[string] `json:"allowed_emails"`
	IsActive      bool                        `json:"is_active"`
	IsDeleted     bool                        `gorm:"index" json:"is_deleted"`
	ExpiresAt     *time.Time                  `json:"expires_at"`

	MaxSubmissionsPerUser int    `gorm:"not null;default:2" json:"max_submissions_per_user"`
	SubmissionFrequency   string `gorm:"size:16;not null;default:unlimited" json:"submission_frequency"`

	ContestType     string                      `gorm:"size:32" json:"contest_type"`
	ContestPrompt   string                      `gorm:"type:text" json:"contest_prompt"`
	JudgingCriteria datatypes.JSONSlice[string] `json:"judging_criteria"`
	MaxScore        int                         `gorm:"not null;default:100" json:"max_score"`

	AllowImageSubmissions bool                        `json:"allow_image_submissions"`
	MaxImageSize          int64                       `json:"max_image_size"`
	AllowedImageTypes     datatypes.JSONSlice[string] `json:"allowed_image_types"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired reports whether the board's optional expiry has passed.
func (b Board) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}
