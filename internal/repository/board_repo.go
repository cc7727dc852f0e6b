package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// BoardFilter narrows board listings.
type BoardFilter struct {
	CreatedBy  *string
	OnlyActive bool
}

// BoardRepository defines data operations for contest boards.
type BoardRepository interface {
	List(ctx context.Context, filter BoardFilter) ([]models.Board, error)
	GetByID(ctx context.Context, id string) (models.Board, error)
	Create(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	SoftDelete(ctx context.Context, id string) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository instantiates the repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Board{}).Where("is_deleted = ?", false)
}

func (r *boardRepository) List(ctx context.Context, filter BoardFilter) ([]models.Board, error) {
	query := r.baseQuery(ctx)

	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var boards []models.Board
	if err := query.Order("created_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}

	return boards, nil
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (models.Board, error) {
	var board models.Board
	if err := r.baseQuery(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		return models.Board{}, err
	}

	return board, nil
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepository) Update(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *boardRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Board{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false}).Error
}
