package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GoldenFighter/contestboard/internal/dto"
	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrSubmissionForbidden indicates the caller may not act on the submission.
var ErrSubmissionForbidden = errors.New("forbidden")

// ImageUploader stores a binary image and returns its URL plus storage key.
type ImageUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, string, error)
}

// SubmissionService orchestrates a submission attempt end to end: access,
// lifecycle, quota, frequency, throttle, image validation, judging,
// persistence. Rejections surface as *Rejection values in check order.
type SubmissionService interface {
	SubmitText(ctx context.Context, boardID, ownerEmail string, payload dto.TextSubmissionRequest) (dto.SubmissionResponse, error)
	SubmitImage(ctx context.Context, boardID, ownerEmail string, payload dto.ImageSubmissionRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error)
	List(ctx context.Context, boardID, viewerEmail string) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id, viewerEmail string) (dto.SubmissionResponse, error)
	Quota(ctx context.Context, boardID, ownerEmail string) (QuotaStatus, error)
	Delete(ctx context.Context, id, requesterEmail string) error
}

type submissionService struct {
	boards      repository.BoardRepository
	submissions repository.SubmissionRepository
	quota       *QuotaTracker
	frequency   *FrequencyGate
	throttle    *AttemptThrottle
	normalizer  *ScoreNormalizer
	uploader    ImageUploader
	auth        AuthorizationPolicy
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	events      *EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs the submission orchestrator.
func NewSubmissionService(boardRepo repository.BoardRepository, submissionRepo repository.SubmissionRepository, throttle *AttemptThrottle, normalizer *ScoreNormalizer, uploader ImageUploader, auth AuthorizationPolicy, validate *validator.Validate, events *EventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		boards:      boardRepo,
		submissions: submissionRepo,
		quota:       NewQuotaTracker(submissionRepo),
		frequency:   NewFrequencyGate(submissionRepo),
		throttle:    throttle,
		normalizer:  normalizer,
		uploader:    uploader,
		auth:        auth,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

// admit runs the governance checkpoints shared by both submission kinds.
// Order is contract: access denied before board state, board state before
// quota, quota before frequency, frequency before throttle. Counts are read
// fresh here, immediately before the caller persists, to keep the accepted
// check-then-insert race window as small as the storage API allows.
// excludeID leaves one persisted record out of the counts; a retry of an
// unscored record passes its own ID so the row cannot block itself.
func (s *submissionService) admit(ctx context.Context, board models.Board, ownerEmail string, now time.Time, excludeID string) error {
	if !CanViewBoard(board, ownerEmail, s.auth) {
		return reject(RejectionAccessDenied, "you do not have access to this board")
	}

	switch EvaluateBoardState(board, now) {
	case BoardInactive:
		return reject(RejectionBoardInactive, "board is not accepting submissions")
	case BoardExpired:
		return reject(RejectionBoardExpired, "board has expired")
	}

	status, err := s.quota.CheckExcluding(ctx, board.ID, ownerEmail, board.MaxSubmissionsPerUser, excludeID)
	if err != nil {
		return err
	}
	if !status.CanSubmit {
		return &Rejection{
			Kind:         RejectionQuotaExceeded,
			Reasons:      []string{fmt.Sprintf("submission limit reached: %d of %d used", status.CurrentCount, status.MaxAllowed)},
			CurrentCount: status.CurrentCount,
			MaxAllowed:   status.MaxAllowed,
		}
	}

	allowed, windowCount, err := s.frequency.AllowExcluding(ctx, board, ownerEmail, now, excludeID)
	if err != nil {
		return err
	}
	if !allowed {
		return &Rejection{
			Kind:         RejectionFrequencyExceeded,
			Reasons:      []string{fmt.Sprintf("%s submission limit reached", board.SubmissionFrequency)},
			CurrentCount: windowCount,
			MaxAllowed:   board.MaxSubmissionsPerUser,
		}
	}

	if s.throttle != nil && !s.throttle.Allow(ctx, board.ID, ownerEmail) {
		return reject(RejectionThrottled, "please wait a few seconds between submissions")
	}

	return nil
}

// SubmitText accepts, scores and persists a text entry. Scoring is
// synchronous on this path; the record is only created once a scored result
// exists.
func (s *submissionService) SubmitText(ctx context.Context, boardID, ownerEmail string, payload dto.TextSubmissionRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	// Records are stored under the normalized identity; the same form has to
	// reach every count or the caps drift apart from the stored rows.
	ownerEmail = normalizeEmail(ownerEmail)

	board, err := s.getBoard(ctx, boardID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	if err := s.admit(ctx, board, ownerEmail, now, ""); err != nil {
		s.publishRejection(ctx, board.ID, ownerEmail, err)
		return dto.SubmissionResponse{}, err
	}

	prompt := s.sanitizer.Sanitize(payload.Prompt)
	contextText := s.sanitizer.Sanitize(payload.Context)

	result, err := s.normalizer.Score(ctx, board.ContestType, board.ContestPrompt, "", prompt+"\n"+contextText, board.JudgingCriteria)
	if err != nil {
		s.logger.Warn().Err(err).Str("board_id", board.ID).Msg("judge call failed for text entry")
		return dto.SubmissionResponse{}, reject(RejectionJudgeFailure, err.Error())
	}

	submission := models.Submission{
		ID:             uuid.NewString(),
		BoardID:        board.ID,
		OwnerEmail:     ownerEmail,
		Kind:           models.SubmissionKindText,
		SubmissionDate: now,
		Prompt:         prompt,
		ContextText:    contextText,
		IsProcessed:    true,
	}
	applyScoringResult(&submission, result, board.MaxScore)

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.events.Publish(ctx, SubmissionEvent{
		Type:         EventSubmissionScored,
		BoardID:      board.ID,
		SubmissionID: submission.ID,
		OwnerEmail:   submission.OwnerEmail,
		Rating:       submission.Rating,
	})
	s.logger.Info().Str("submission_id", submission.ID).Int("rating", submission.Rating).Msg("text submission scored")

	return dto.NewSubmissionResponse(submission), nil
}

// SubmitImage validates, uploads, persists and scores an image entry. The
// record is persisted unscored before the judge call; a judge failure leaves
// it with is_processed=false and a later retry updates that record instead
// of creating a duplicate.
func (s *submissionService) SubmitImage(ctx context.Context, boardID, ownerEmail string, payload dto.ImageSubmissionRequest, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		return dto.SubmissionResponse{}, fmt.Errorf("image file is required")
	}

	ownerEmail = normalizeEmail(ownerEmail)

	board, err := s.getBoard(ctx, boardID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	now := s.now()

	// A record left unprocessed by an earlier judge failure is re-scored in
	// place rather than duplicated. Admission still runs in full so a board
	// closed, expired or revoked since the original attempt stays closed;
	// only the pending row itself is left out of the counts.
	pending, err := s.submissions.FindUnprocessed(ctx, board.ID, ownerEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}
	retrying := err == nil

	excludeID := ""
	if retrying {
		excludeID = pending.ID
	}

	if err := s.admit(ctx, board, ownerEmail, now, excludeID); err != nil {
		s.publishRejection(ctx, board.ID, ownerEmail, err)
		return dto.SubmissionResponse{}, err
	}

	if retrying {
		return s.rescore(ctx, board, pending)
	}

	if !board.AllowImageSubmissions {
		return dto.SubmissionResponse{}, reject(RejectionImageInvalid, "board does not accept image submissions")
	}

	data, mime, err := readImage(file, board)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	width, height := decodeDimensions(data)
	meta := ScoreImageAuthenticity(RawImageInfo{
		FileName:     file.Filename,
		FileSize:     file.Size,
		LastModified: time.UnixMilli(payload.LastModified),
		Width:        width,
		Height:       height,
		MimeType:     mime,
	}, now)

	verdict := ValidateForContest(meta)
	if !verdict.IsValid {
		// The full reason list is surfaced so the user can fix every
		// problem at once; the judge is never reached on this path.
		return dto.SubmissionResponse{}, &Rejection{Kind: RejectionImageInvalid, Reasons: verdict.Reasons}
	}

	url, key, err := s.uploader.Upload(ctx, file.Filename, bytes.NewReader(data))
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to store image: %w", err)
	}

	submission := models.Submission{
		ID:             uuid.NewString(),
		BoardID:        board.ID,
		OwnerEmail:     ownerEmail,
		Kind:           models.SubmissionKindImage,
		SubmissionDate: now,
		ContextText:    s.sanitizer.Sanitize(payload.Context),
		ImageURL:       url,
		ImageKey:       key,
		ImageSize:      file.Size,
		ImageMime:      mime,
		ImageMetadata:  datatypes.NewJSONType(meta),
		IsProcessed:    false,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.events.Publish(ctx, SubmissionEvent{
		Type:         EventSubmissionAccepted,
		BoardID:      board.ID,
		SubmissionID: submission.ID,
		OwnerEmail:   submission.OwnerEmail,
	})

	return s.rescore(ctx, board, submission)
}

// rescore runs the judge against a persisted image record and attaches the
// normalized result. On failure the record stays unprocessed for a later
// retry.
func (s *submissionService) rescore(ctx context.Context, board models.Board, submission models.Submission) (dto.SubmissionResponse, error) {
	result, err := s.normalizer.Score(ctx, board.ContestType, board.ContestPrompt, submission.ImageURL, submission.ContextText, board.JudgingCriteria)
	if err != nil {
		s.logger.Warn().Err(err).Str("submission_id", submission.ID).Msg("judge call failed, record kept unprocessed")
		return dto.SubmissionResponse{}, reject(RejectionJudgeFailure, err.Error())
	}

	applyScoringResult(&submission, result, board.MaxScore)
	submission.IsProcessed = true

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.events.Publish(ctx, SubmissionEvent{
		Type:         EventSubmissionScored,
		BoardID:      board.ID,
		SubmissionID: submission.ID,
		OwnerEmail:   submission.OwnerEmail,
		Rating:       submission.Rating,
	})
	s.logger.Info().Str("submission_id", submission.ID).Int("rating", submission.Rating).Msg("image submission scored")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) List(ctx context.Context, boardID, viewerEmail string) ([]dto.SubmissionResponse, error) {
	board, err := s.getBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if !CanViewBoard(board, viewerEmail, s.auth) {
		return nil, ErrSubmissionForbidden
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{BoardID: &board.ID})
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

// Get returns a single submission, visible to anyone who can view its board.
func (s *submissionService) Get(ctx context.Context, id, viewerEmail string) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if submission.IsDeleted {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	board, err := s.getBoard(ctx, submission.BoardID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if !CanViewBoard(board, viewerEmail, s.auth) {
		return dto.SubmissionResponse{}, ErrSubmissionForbidden
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Quota reports the caller's lifetime standing for the UI. A missing board
// falls back to the most restrictive default cap rather than failing the
// read.
func (s *submissionService) Quota(ctx context.Context, boardID, ownerEmail string) (QuotaStatus, error) {
	maxAllowed := -1
	if board, err := s.boards.GetByID(ctx, boardID); err == nil {
		maxAllowed = board.MaxSubmissionsPerUser
	}

	return s.quota.Check(ctx, boardID, normalizeEmail(ownerEmail), maxAllowed)
}

func (s *submissionService) Delete(ctx context.Context, id, requesterEmail string) error {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if !CanMutateSubmission(submission, requesterEmail, s.auth) {
		return ErrSubmissionForbidden
	}

	return s.submissions.SoftDelete(ctx, submission.ID)
}

func (s *submissionService) getBoard(ctx context.Context, id string) (models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, err
	}
	return board, nil
}

func (s *submissionService) publishRejection(ctx context.Context, boardID, ownerEmail string, err error) {
	var rejection *Rejection
	if !errors.As(err, &rejection) {
		return
	}

	s.events.Publish(ctx, SubmissionEvent{
		Type:       EventSubmissionRejected,
		BoardID:    boardID,
		OwnerEmail: normalizeEmail(ownerEmail),
		Reason:     string(rejection.Kind),
	})
}

func applyScoringResult(submission *models.Submission, result ScoringResult, maxScore int) {
	submission.Scores = datatypes.NewJSONType(result.Scores)
	submission.Rating = RescaleRating(result.Scores.Overall, maxScore)
	submission.Summary = result.Summary
	submission.Reasoning = result.Reasoning
	submission.Risks = datatypes.NewJSONSlice(result.Risks)
	submission.Recommendations = datatypes.NewJSONSlice(result.Recommendations)
	submission.RawJudgePayload = datatypes.JSON(result.Raw)
}

// readImage enforces the board's size and MIME policy and returns the bytes
// for dimension probing and upload.
func readImage(file *multipart.FileHeader, board models.Board) ([]byte, string, error) {
	if board.MaxImageSize > 0 && file.Size > board.MaxImageSize {
		return nil, "", &Rejection{Kind: RejectionImageInvalid, Reasons: []string{fmt.Sprintf("image exceeds the %d byte limit", board.MaxImageSize)}}
	}

	reader, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	mime := mimetype.Detect(data)
	if len(board.AllowedImageTypes) > 0 {
		allowed := false
		for _, allowedType := range board.AllowedImageTypes {
			if mime.Is(allowedType) {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, "", &Rejection{Kind: RejectionImageInvalid, Reasons: []string{fmt.Sprintf("unsupported image type: %s", mime.String())}}
		}
	}

	return data, mime.String(), nil
}

func decodeDimensions(data []byte) (int, int) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return config.Width, config.Height
}
