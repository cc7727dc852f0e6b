package service

import "strings"

// RejectionKind discriminates why a submission attempt was refused. Kinds are
// mutually exclusive and reported in check order: access denied before board
// state, board state before quota, quota before frequency, frequency before
// image validation, image validation before judge failure.
type RejectionKind string

const (
	RejectionAccessDenied      RejectionKind = "access_denied"
	RejectionBoardInactive     RejectionKind = "board_inactive"
	RejectionBoardExpired      RejectionKind = "board_expired"
	RejectionQuotaExceeded     RejectionKind = "quota_exceeded"
	RejectionFrequencyExceeded RejectionKind = "frequency_exceeded"
	RejectionThrottled         RejectionKind = "throttled"
	RejectionImageInvalid      RejectionKind = "image_invalid"
	RejectionJudgeFailure      RejectionKind = "judge_failure"
	RejectionInvariant         RejectionKind = "invariant_violation"
)

// Rejection is the discriminated result for a refused submission attempt.
// Nothing past the orchestrator boundary throws; callers branch on Kind.
type Rejection struct {
	Kind    RejectionKind
	Reasons []string

	// CurrentCount and MaxAllowed are populated for quota and frequency
	// rejections so the caller can render "X of Y used".
	CurrentCount int
	MaxAllowed   int
}

func (r *Rejection) Error() string {
	if len(r.Reasons) == 0 {
		return string(r.Kind)
	}
	return string(r.Kind) + ": " + strings.Join(r.Reasons, "; ")
}

// Retryable reports whether the caller may usefully retry the same attempt.
// Only judge failures and throttling are transient.
func (r *Rejection) Retryable() bool {
	return r.Kind == RejectionJudgeFailure || r.Kind == RejectionThrottled
}

func reject(kind RejectionKind, reasons ...string) *Rejection {
	return &Rejection{Kind: kind, Reasons: reasons}
}
