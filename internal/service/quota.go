package service

import (
	"context"

	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
)

// QuotaStatus reports a user's lifetime standing against a board's per-user
// cap, in the shape the UI renders as "X of Y used".
type QuotaStatus struct {
	CanSubmit    bool `json:"can_submit"`
	CurrentCount int  `json:"current_count"`
	MaxAllowed   int  `json:"max_allowed"`
}

// QuotaTracker counts a user's non-deleted submissions against the board's
// lifetime cap. The count is read fresh on every call; a windowed check is
// the frequency gate's job and both must pass independently.
type QuotaTracker struct {
	submissions repository.SubmissionRepository
}

// NewQuotaTracker constructs a quota tracker over the submission store.
func NewQuotaTracker(submissions repository.SubmissionRepository) *QuotaTracker {
	return &QuotaTracker{submissions: submissions}
}

// Check returns the owner's quota status for the board. maxAllowed falls back
// to the conservative default when the board record is unavailable
// (maxAllowed <= -1 signals a failed lookup).
func (t *QuotaTracker) Check(ctx context.Context, boardID, ownerEmail string, maxAllowed int) (QuotaStatus, error) {
	return t.CheckExcluding(ctx, boardID, ownerEmail, maxAllowed, "")
}

// CheckExcluding behaves as Check but leaves one submission out of the count,
// so a record being re-scored cannot consume its own quota slot.
func (t *QuotaTracker) CheckExcluding(ctx context.Context, boardID, ownerEmail string, maxAllowed int, excludeID string) (QuotaStatus, error) {
	if maxAllowed < 0 {
		maxAllowed = models.DefaultMaxSubmissionsPerUser
	}

	filter := repository.SubmissionFilter{
		BoardID:    &boardID,
		OwnerEmail: &ownerEmail,
	}
	if excludeID != "" {
		filter.ExcludeID = &excludeID
	}

	count, err := t.submissions.Count(ctx, filter)
	if err != nil {
		return QuotaStatus{}, err
	}

	current := int(count)
	return QuotaStatus{
		CanSubmit:    current < maxAllowed,
		CurrentCount: current,
		MaxAllowed:   maxAllowed,
	}, nil
}
