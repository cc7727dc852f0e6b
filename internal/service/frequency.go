package service

import (
	"context"
	"time"

	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
)

// FrequencyGate counts a user's submissions inside a rolling policy window
// against the board's per-user cap. The same cap field serves as both the
// lifetime and the per-window limit.
type FrequencyGate struct {
	submissions repository.SubmissionRepository
}

// NewFrequencyGate constructs a frequency gate over the submission store.
func NewFrequencyGate(submissions repository.SubmissionRepository) *FrequencyGate {
	return &FrequencyGate{submissions: submissions}
}

// Allow reports whether the owner may submit to the board at the given
// instant. Unlimited boards always pass; a zero cap never does. The window is
// half-open [windowStart, now]: a record stamped exactly at windowStart
// counts toward the window it starts.
func (g *FrequencyGate) Allow(ctx context.Context, board models.Board, ownerEmail string, now time.Time) (bool, int, error) {
	return g.AllowExcluding(ctx, board, ownerEmail, now, "")
}

// AllowExcluding behaves as Allow but leaves one submission out of the window
// count, so a record being re-scored cannot fill its own window.
func (g *FrequencyGate) AllowExcluding(ctx context.Context, board models.Board, ownerEmail string, now time.Time, excludeID string) (bool, int, error) {
	if board.SubmissionFrequency == models.FrequencyUnlimited || board.SubmissionFrequency == "" {
		return board.MaxSubmissionsPerUser != 0, 0, nil
	}

	windowStart := WindowStart(board.SubmissionFrequency, now)

	filter := repository.SubmissionFilter{
		BoardID:    &board.ID,
		OwnerEmail: &ownerEmail,
		Since:      &windowStart,
	}
	if excludeID != "" {
		filter.ExcludeID = &excludeID
	}

	count, err := g.submissions.Count(ctx, filter)
	if err != nil {
		return false, 0, err
	}

	current := int(count)
	return current < board.MaxSubmissionsPerUser, current, nil
}

// WindowStart computes the opening instant of the policy window containing
// now. Weeks start on Sunday in local time, with no timezone normalization;
// that boundary is preserved from the original behavior rather than
// corrected.
func WindowStart(frequency string, now time.Time) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.FrequencyWeekly:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return dayStart.AddDate(0, 0, -int(now.Weekday()))
	case models.FrequencyMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}
