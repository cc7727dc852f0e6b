package service

import (
	"context"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
	"github.com/GoldenFighter/contestboard/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeBoardRepo is an in-memory BoardRepository.
type fakeBoardRepo struct {
	boards map[string]models.Board
}

func newFakeBoardRepo(boards ...models.Board) *fakeBoardRepo {
	repo := &fakeBoardRepo{boards: make(map[string]models.Board)}
	for _, board := range boards {
		repo.boards[board.ID] = board
	}
	return repo
}

func (r *fakeBoardRepo) List(_ context.Context, filter repository.BoardFilter) ([]models.Board, error) {
	var result []models.Board
	for _, board := range r.boards {
		if board.IsDeleted {
			continue
		}
		if filter.CreatedBy != nil && board.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.OnlyActive && !board.IsActive {
			continue
		}
		result = append(result, board)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeBoardRepo) GetByID(_ context.Context, id string) (models.Board, error) {
	board, ok := r.boards[id]
	if !ok || board.IsDeleted {
		return models.Board{}, gorm.ErrRecordNotFound
	}
	return board, nil
}

func (r *fakeBoardRepo) Create(_ context.Context, board *models.Board) error {
	r.boards[board.ID] = *board
	return nil
}

func (r *fakeBoardRepo) Update(_ context.Context, board *models.Board) error {
	r.boards[board.ID] = *board
	return nil
}

func (r *fakeBoardRepo) SoftDelete(_ context.Context, id string) error {
	board := r.boards[id]
	board.IsDeleted = true
	board.IsActive = false
	r.boards[id] = board
	return nil
}

// fakeSubmissionRepo is an in-memory SubmissionRepository honoring the same
// filter semantics as the real one.
type fakeSubmissionRepo struct {
	submissions []models.Submission
}

func newFakeSubmissionRepo(submissions ...models.Submission) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: submissions}
}

func (r *fakeSubmissionRepo) matches(submission models.Submission, filter repository.SubmissionFilter) bool {
	if !filter.IncludeDeleted && submission.IsDeleted {
		return false
	}
	if filter.BoardID != nil && submission.BoardID != *filter.BoardID {
		return false
	}
	if filter.OwnerEmail != nil && submission.OwnerEmail != *filter.OwnerEmail {
		return false
	}
	if filter.Since != nil && submission.SubmissionDate.Before(*filter.Since) {
		return false
	}
	if filter.Kind != nil && submission.Kind != *filter.Kind {
		return false
	}
	if filter.ExcludeID != nil && submission.ID == *filter.ExcludeID {
		return false
	}
	return true
}

func (r *fakeSubmissionRepo) List(_ context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	var result []models.Submission
	for _, submission := range r.submissions {
		if r.matches(submission, filter) {
			result = append(result, submission)
		}
	}
	return result, nil
}

func (r *fakeSubmissionRepo) Count(ctx context.Context, filter repository.SubmissionFilter) (int64, error) {
	listed, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(listed)), nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id string) (models.Submission, error) {
	for _, submission := range r.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) FindUnprocessed(_ context.Context, boardID, ownerEmail string) (models.Submission, error) {
	var found *models.Submission
	for i := range r.submissions {
		submission := r.submissions[i]
		if submission.BoardID != boardID || submission.OwnerEmail != ownerEmail {
			continue
		}
		if submission.Kind != models.SubmissionKindImage || submission.IsProcessed || submission.IsDeleted {
			continue
		}
		if found == nil || submission.SubmissionDate.After(found.SubmissionDate) {
			found = &r.submissions[i]
		}
	}
	if found == nil {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return *found, nil
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	r.submissions = append(r.submissions, *submission)
	return nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, submission *models.Submission) error {
	for i := range r.submissions {
		if r.submissions[i].ID == submission.ID {
			r.submissions[i] = *submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) SoftDelete(_ context.Context, id string) error {
	for i := range r.submissions {
		if r.submissions[i].ID == id {
			r.submissions[i].IsDeleted = true
		}
	}
	return nil
}

func (r *fakeSubmissionRepo) SoftDeleteByBoard(_ context.Context, boardID string) error {
	for i := range r.submissions {
		if r.submissions[i].BoardID == boardID {
			r.submissions[i].IsDeleted = true
		}
	}
	return nil
}

// fakeJudge returns a canned response or error and records the requests it
// received.
type fakeJudge struct {
	response ai.JudgeResponse
	err      error
	requests []ai.JudgeRequest
}

func (j *fakeJudge) Judge(_ context.Context, req ai.JudgeRequest) (ai.JudgeResponse, error) {
	j.requests = append(j.requests, req)
	if j.err != nil {
		return ai.JudgeResponse{}, j.err
	}
	return j.response, nil
}

// fakeUploader records uploads without touching any storage backend.
type fakeUploader struct {
	err     error
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, name string, _ io.Reader) (string, string, error) {
	if u.err != nil {
		return "", "", u.err
	}
	u.uploads = append(u.uploads, name)
	return "https://images.example.com/" + name, "uploads/" + name, nil
}

func submissionFilter(boardID string) repository.SubmissionFilter {
	return repository.SubmissionFilter{BoardID: &boardID}
}

func submissionFilterAll(boardID string) repository.SubmissionFilter {
	return repository.SubmissionFilter{BoardID: &boardID, IncludeDeleted: true}
}

func activeBoard(id string) models.Board {
	return models.Board{
		ID:                    id,
		Name:                  "Weekly Photo Challenge",
		CreatedBy:             "owner@example.com",
		IsPublic:              true,
		IsActive:              true,
		MaxSubmissionsPerUser: models.DefaultMaxSubmissionsPerUser,
		SubmissionFrequency:   models.FrequencyUnlimited,
		ContestType:           models.ContestTypePhotography,
		ContestPrompt:         "sunset",
		MaxScore:              100,
		AllowImageSubmissions: true,
		MaxImageSize:          10 * 1024 * 1024,
	}
}

func submissionAt(boardID, ownerEmail string, at time.Time) models.Submission {
	return models.Submission{
		ID:             "sub-" + at.Format("20060102150405"),
		BoardID:        boardID,
		OwnerEmail:     ownerEmail,
		Kind:           models.SubmissionKindText,
		SubmissionDate: at,
		IsProcessed:    true,
	}
}
