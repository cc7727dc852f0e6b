package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoldenFighter/contestboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Board{}, &models.Submission{}))

	return db
}

func testBoard(id string) models.Board {
	return models.Board{
		ID:                    id,
		Name:                  "Test Board",
		CreatedBy:             "owner@example.com",
		IsPublic:              true,
		IsActive:              true,
		MaxSubmissionsPerUser: 2,
		SubmissionFrequency:   models.FrequencyUnlimited,
		ContestType:           models.ContestTypeGeneral,
		MaxScore:              100,
	}
}

func testSubmission(id, boardID string, at time.Time) models.Submission {
	return models.Submission{
		ID:             id,
		BoardID:        boardID,
		OwnerEmail:     "user@example.com",
		Kind:           models.SubmissionKindText,
		SubmissionDate: at,
		IsProcessed:    true,
	}
}
