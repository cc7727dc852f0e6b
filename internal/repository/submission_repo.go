package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// SubmissionFilter narrows submission queries. Deleted records are excluded
// unless IncludeDeleted is set; every quota and frequency count relies on
// that exclusion. ExcludeID drops a single record from the result, used when
// a pending record must not count against its own retry.
type SubmissionFilter struct {
	BoardID        *string
	OwnerEmail     *string
	Since          *time.Time
	Kind           *string
	ExcludeID      *string
	IncludeDeleted bool
}

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	Count(ctx context.Context, filter SubmissionFilter) (int64, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	FindUnprocessed(ctx context.Context, boardID, ownerEmail string) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	Update(ctx context.Context, submission *models.Submission) error
	SoftDelete(ctx context.Context, id string) error
	SoftDeleteByBoard(ctx context.Context, boardID string) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) filteredQuery(ctx context.Context, filter SubmissionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Submission{})

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	if filter.BoardID != nil {
		query = query.Where("board_id = ?", *filter.BoardID)
	}

	if filter.OwnerEmail != nil {
		query = query.Where("owner_email = ?", *filter.OwnerEmail)
	}

	if filter.Since != nil {
		query = query.Where("submission_date >= ?", *filter.Since)
	}

	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}

	if filter.ExcludeID != nil {
		query = query.Where("id <> ?", *filter.ExcludeID)
	}

	return query
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.filteredQuery(ctx, filter).Order("submission_date DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) Count(ctx context.Context, filter SubmissionFilter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

// FindUnprocessed locates an image record persisted before a judge failure so
// a retry updates it instead of creating a duplicate.
func (r *submissionRepository) FindUnprocessed(ctx context.Context, boardID, ownerEmail string) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Where("owner_email = ?", ownerEmail).
		Where("kind = ?", models.SubmissionKindImage).
		Where("is_processed = ?", false).
		Where("is_deleted = ?", false).
		Order("submission_date DESC").
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// SoftDeleteByBoard cascades a board deletion to its submissions.
func (r *submissionRepository) SoftDeleteByBoard(ctx context.Context, boardID string) error {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("board_id = ?", boardID).
		Update("is_deleted", true).Error
}
