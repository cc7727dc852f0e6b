package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GoldenFighter/contestboard/internal/dto"
	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
)

// ErrBoardNotFound indicates a board could not be found.
var ErrBoardNotFound = errors.New("board not found")

// ErrBoardForbidden indicates the caller may not act on the board.
var ErrBoardForbidden = errors.New("forbidden")

const defaultMaxImageSize = 10 * 1024 * 1024

// Every default type has a registered decoder so dimension probing works;
// heic stays out until Go can decode it.
var defaultAllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// BoardService manages contest board lifecycle and listing.
type BoardService interface {
	Create(ctx context.Context, creatorEmail string, payload dto.BoardCreateRequest) (dto.BoardResponse, error)
	List(ctx context.Context, viewerEmail string) ([]dto.BoardResponse, error)
	Get(ctx context.Context, id, viewerEmail string) (dto.BoardResponse, error)
	Update(ctx context.Context, id, requesterEmail string, payload dto.BoardUpdateRequest) (dto.BoardResponse, error)
	Delete(ctx context.Context, id, requesterEmail string) error
}

type boardService struct {
	boards      repository.BoardRepository
	submissions repository.SubmissionRepository
	auth        AuthorizationPolicy
	validator   *validator.Validate
	events      *EventPublisher
	logger      zerolog.Logger
}

// NewBoardService constructs a BoardService instance.
func NewBoardService(boardRepo repository.BoardRepository, submissionRepo repository.SubmissionRepository, auth AuthorizationPolicy, validate *validator.Validate, events *EventPublisher, logger zerolog.Logger) BoardService {
	return &boardService{
		boards:      boardRepo,
		submissions: submissionRepo,
		auth:        auth,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "board_service").Logger(),
	}
}

func (s *boardService) Create(ctx context.Context, creatorEmail string, payload dto.BoardCreateRequest) (dto.BoardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BoardResponse{}, err
	}

	if s.auth == nil || !s.auth.IsAdmin(creatorEmail) {
		return dto.BoardResponse{}, ErrBoardForbidden
	}

	board := models.Board{
		ID:                    uuid.NewString(),
		Name:                  payload.Name,
		CreatedBy:             normalizeEmail(creatorEmail),
		IsPublic:              payload.IsPublic,
		AllowedEmails:         datatypes.NewJSONSlice(payload.AllowedEmails),
		IsActive:              true,
		ExpiresAt:             payload.ExpiresAt,
		MaxSubmissionsPerUser: models.DefaultMaxSubmissionsPerUser,
		SubmissionFrequency:   models.FrequencyUnlimited,
		ContestType:           payload.ContestType,
		ContestPrompt:         payload.ContestPrompt,
		JudgingCriteria:       datatypes.NewJSONSlice(payload.JudgingCriteria),
		MaxScore:              100,
		AllowImageSubmissions: payload.AllowImageSubmissions,
		MaxImageSize:          defaultMaxImageSize,
		AllowedImageTypes:     datatypes.NewJSONSlice(defaultAllowedImageTypes),
	}

	if payload.MaxSubmissionsPerUser != nil {
		board.MaxSubmissionsPerUser = *payload.MaxSubmissionsPerUser
	}
	if payload.SubmissionFrequency != "" {
		board.SubmissionFrequency = payload.SubmissionFrequency
	}
	if payload.MaxScore != nil {
		board.MaxScore = *payload.MaxScore
	}
	if payload.MaxImageSize != nil {
		board.MaxImageSize = *payload.MaxImageSize
	}
	if len(payload.AllowedImageTypes) > 0 {
		board.AllowedImageTypes = datatypes.NewJSONSlice(payload.AllowedImageTypes)
	}
	if board.ContestType == "" {
		board.ContestType = models.ContestTypeGeneral
	}

	if err := s.boards.Create(ctx, &board); err != nil {
		return dto.BoardResponse{}, err
	}

	s.logger.Info().Str("board_id", board.ID).Str("created_by", board.CreatedBy).Msg("board created")

	return dto.NewBoardResponse(board), nil
}

// List returns only the boards the viewer may see, applying the access
// policy per board.
func (s *boardService) List(ctx context.Context, viewerEmail string) ([]dto.BoardResponse, error) {
	boards, err := s.boards.List(ctx, repository.BoardFilter{})
	if err != nil {
		return nil, err
	}

	visible := make([]models.Board, 0, len(boards))
	for _, board := range boards {
		if CanViewBoard(board, viewerEmail, s.auth) {
			visible = append(visible, board)
		}
	}

	return dto.NewBoardResponseSlice(visible), nil
}

func (s *boardService) Get(ctx context.Context, id, viewerEmail string) (dto.BoardResponse, error) {
	board, err := s.getBoard(ctx, id)
	if err != nil {
		return dto.BoardResponse{}, err
	}

	if !CanViewBoard(board, viewerEmail, s.auth) {
		return dto.BoardResponse{}, ErrBoardForbidden
	}

	return dto.NewBoardResponse(board), nil
}

func (s *boardService) Update(ctx context.Context, id, requesterEmail string, payload dto.BoardUpdateRequest) (dto.BoardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BoardResponse{}, err
	}

	board, err := s.getBoard(ctx, id)
	if err != nil {
		return dto.BoardResponse{}, err
	}

	if !CanMutateBoard(board, requesterEmail, s.auth) {
		return dto.BoardResponse{}, ErrBoardForbidden
	}

	if payload.Name != nil {
		board.Name = *payload.Name
	}
	if payload.IsPublic != nil {
		board.IsPublic = *payload.IsPublic
	}
	if payload.AllowedEmails != nil {
		board.AllowedEmails = datatypes.NewJSONSlice(payload.AllowedEmails)
	}
	if payload.IsActive != nil {
		board.IsActive = *payload.IsActive
	}
	// A nil ExpiresAt means "unchanged", so removing a deadline needs the
	// explicit clear flag.
	if payload.ClearExpiresAt {
		board.ExpiresAt = nil
	} else if payload.ExpiresAt != nil {
		board.ExpiresAt = payload.ExpiresAt
	}
	if payload.MaxSubmissionsPerUser != nil {
		board.MaxSubmissionsPerUser = *payload.MaxSubmissionsPerUser
	}
	if payload.SubmissionFrequency != nil {
		board.SubmissionFrequency = *payload.SubmissionFrequency
	}
	if payload.ContestPrompt != nil {
		board.ContestPrompt = *payload.ContestPrompt
	}
	if payload.MaxScore != nil {
		board.MaxScore = *payload.MaxScore
	}
	if payload.AllowImageSubmissions != nil {
		board.AllowImageSubmissions = *payload.AllowImageSubmissions
	}

	if err := s.boards.Update(ctx, &board); err != nil {
		return dto.BoardResponse{}, err
	}

	s.logger.Info().Str("board_id", board.ID).Msg("board updated")

	return dto.NewBoardResponse(board), nil
}

// Delete retires a board. Boards are never physically removed; the deletion
// cascades a soft-delete flag to every submission so quota history stays
// intact.
func (s *boardService) Delete(ctx context.Context, id, requesterEmail string) error {
	board, err := s.getBoard(ctx, id)
	if err != nil {
		return err
	}

	if !CanMutateBoard(board, requesterEmail, s.auth) {
		return ErrBoardForbidden
	}

	if err := s.boards.SoftDelete(ctx, board.ID); err != nil {
		return err
	}

	if err := s.submissions.SoftDeleteByBoard(ctx, board.ID); err != nil {
		return err
	}

	s.events.Publish(ctx, SubmissionEvent{Type: EventBoardDeleted, BoardID: board.ID})
	s.logger.Info().Str("board_id", board.ID).Msg("board soft-deleted with submissions")

	return nil
}

func (s *boardService) getBoard(ctx context.Context, id string) (models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, err
	}
	return board, nil
}
