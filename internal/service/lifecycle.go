package service

import (
	"time"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// BoardState is the lifecycle position of a board at an evaluation instant.
type BoardState string

const (
	// BoardActive boards accept new submissions.
	BoardActive BoardState = "active"
	// BoardInactive boards remain readable but refuse submissions.
	BoardInactive BoardState = "inactive"
	// BoardExpired boards passed their expiry and refuse submissions.
	BoardExpired BoardState = "expired"
)

// EvaluateBoardState classifies the board at the given instant. Callers must
// evaluate at submission time, not from a cached page-load read, so a board
// cannot accept an entry the instant after it expires.
func EvaluateBoardState(board models.Board, now time.Time) BoardState {
	if !board.IsActive {
		return BoardInactive
	}

	if board.IsExpired(now) {
		return BoardExpired
	}

	return BoardActive
}
