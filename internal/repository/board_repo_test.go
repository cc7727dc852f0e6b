package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBoardRepositoryCreateAndGet(t *testing.T) {
	repo := NewBoardRepository(setupTestDB(t))
	ctx := context.Background()

	board := testBoard("board-1")
	require.NoError(t, repo.Create(ctx, &board))

	fetched, err := repo.GetByID(ctx, "board-1")
	require.NoError(t, err)
	require.Equal(t, "Test Board", fetched.Name)
	require.Equal(t, "owner@example.com", fetched.CreatedBy)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBoardRepositoryListFilters(t *testing.T) {
	repo := NewBoardRepository(setupTestDB(t))
	ctx := context.Background()

	first := testBoard("board-1")
	second := testBoard("board-2")
	second.CreatedBy = "other@example.com"
	second.IsActive = false
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &second))

	boards, err := repo.List(ctx, BoardFilter{})
	require.NoError(t, err)
	require.Len(t, boards, 2)

	creator := "other@example.com"
	boards, err = repo.List(ctx, BoardFilter{CreatedBy: &creator})
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "board-2", boards[0].ID)

	boards, err = repo.List(ctx, BoardFilter{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "board-1", boards[0].ID)
}

func TestBoardRepositorySoftDelete(t *testing.T) {
	repo := NewBoardRepository(setupTestDB(t))
	ctx := context.Background()

	board := testBoard("board-1")
	require.NoError(t, repo.Create(ctx, &board))
	require.NoError(t, repo.SoftDelete(ctx, "board-1"))

	// The record stays in the table but vanishes from every read path.
	_, err := repo.GetByID(ctx, "board-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	boards, err := repo.List(ctx, BoardFilter{})
	require.NoError(t, err)
	require.Empty(t, boards)
}

func TestBoardRepositoryUpdate(t *testing.T) {
	repo := NewBoardRepository(setupTestDB(t))
	ctx := context.Background()

	board := testBoard("board-1")
	require.NoError(t, repo.Create(ctx, &board))

	board.Name = "Renamed"
	board.MaxSubmissionsPerUser = 5
	require.NoError(t, repo.Update(ctx, &board))

	fetched, err := repo.GetByID(ctx, "board-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", fetched.Name)
	require.Equal(t, 5, fetched.MaxSubmissionsPerUser)
}
