package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission kinds. Text and image entries share one table and identical
// governance rules; only the payload columns differ.
const (
	SubmissionKindText  = "text"
	SubmissionKindImage = "image"
)

// Submission is a single contest entry, text or image. Deletion is always a
// flag flip so quota and frequency history survive.
type Submission struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	BoardID        string    `gorm:"size:36;not null;index" json:"board_id"`
	OwnerEmail     string    `gorm:"size:255;not null;index" json:"owner_email"`
	Kind           string    `gorm:"size:8;not null" json:"kind"`
	SubmissionDate time.Time `gorm:"not null;index" json:"submission_date"`

	Prompt      string `gorm:"type:text" json:"prompt"`
	ContextText string `gorm:"type:text" json:"context_text"`

	ImageURL  string `gorm:"size:512" json:"image_url,omitempty"`
	ImageKey  string `gorm:"size:255" json:"image_key,omitempty"`
	ImageSize int64  `json:"image_size,omitempty"`
	ImageMime string `gorm:"size:64" json:"image_mime,omitempty"`

	ImageMetadata datatypes.JSONType[ImageMetadata] `json:"image_metadata,omitempty"`

	Rating          int                                 `json:"rating"`
	Summary         string                              `gorm:"type:text" json:"summary"`
	Reasoning       string                              `gorm:"type:text" json:"reasoning"`
	Risks           datatypes.JSONSlice[string]         `json:"risks"`
	Recommendations datatypes.JSONSlice[string]         `json:"recommendations"`
	Scores          datatypes.JSONType[ScoringCriteria] `json:"scores"`
	RawJudgePayload datatypes.JSON                      `json:"raw_judge_payload,omitempty"`

	IsDeleted   bool `gorm:"index" json:"is_deleted"`
	IsProcessed bool `json:"is_processed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageMetadata captures the file facts and derived heuristics attached to an
// image submission. Persisted as a JSON column, never its own table.
type ImageMetadata struct {
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size"`
	FileType     string    `json:"file_type"`
	LastModified time.Time `json:"last_modified"`

	DeviceMake      string `json:"device_make,omitempty"`
	DeviceModel     string `json:"device_model,omitempty"`
	OriginatingApp  string `json:"originating_app,omitempty"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Orientation     string `json:"orientation,omitempty"`
	IsRecent        bool   `json:"is_recent"`
	IsFromCamera    bool   `json:"is_from_camera"`
	ValidationScore int    `json:"validation_score"`
}

// ScoringCriteria holds the five normalized sub-scores plus their rounded
// mean. Overall is always recomputed locally, never taken from the judge.
type ScoringCriteria struct {
	Creativity  int `json:"creativity"`
	Technical   int `json:"technical"`
	Composition int `json:"composition"`
	Relevance   int `json:"relevance"`
	Originality int `json:"originality"`
	Overall     int `json:"overall"`
}
