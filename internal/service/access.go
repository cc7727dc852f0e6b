package service

import (
	"strings"

	"github.com/GoldenFighter/contestboard/internal/models"
)

// AuthorizationPolicy answers whether an identity holds administrator
// privileges. It is injected so the access rules can be tested without the
// real identity table.
type AuthorizationPolicy interface {
	IsAdmin(email string) bool
}

// AdminEmailPolicy is an AuthorizationPolicy backed by a configured set of
// administrator emails.
type AdminEmailPolicy map[string]struct{}

// NewAdminEmailPolicy builds a policy from a list of admin emails.
func NewAdminEmailPolicy(emails []string) AdminEmailPolicy {
	policy := make(AdminEmailPolicy, len(emails))
	for _, email := range emails {
		normalized := normalizeEmail(email)
		if normalized != "" {
			policy[normalized] = struct{}{}
		}
	}
	return policy
}

// IsAdmin reports whether the email belongs to an administrator.
func (p AdminEmailPolicy) IsAdmin(email string) bool {
	_, ok := p[normalizeEmail(email)]
	return ok
}

// CanViewBoard decides if an identity may view or use a board. First match
// wins: public board, creator, allow-list, admin. No side effects; a denied
// identity must never reach the quota tracker.
func CanViewBoard(board models.Board, email string, auth AuthorizationPolicy) bool {
	if board.IsPublic {
		return true
	}

	normalized := normalizeEmail(email)
	if normalized == "" {
		return false
	}

	if normalizeEmail(board.CreatedBy) == normalized {
		return true
	}

	for _, allowed := range board.AllowedEmails {
		if normalizeEmail(allowed) == normalized {
			return true
		}
	}

	return auth != nil && auth.IsAdmin(email)
}

// CanMutateBoard restricts board mutation to its creator or an admin.
func CanMutateBoard(board models.Board, email string, auth AuthorizationPolicy) bool {
	normalized := normalizeEmail(email)
	if normalized != "" && normalizeEmail(board.CreatedBy) == normalized {
		return true
	}
	return auth != nil && auth.IsAdmin(email)
}

// CanMutateSubmission restricts submission mutation to its owner or an admin.
func CanMutateSubmission(submission models.Submission, email string, auth AuthorizationPolicy) bool {
	normalized := normalizeEmail(email)
	if normalized != "" && normalizeEmail(submission.OwnerEmail) == normalized {
		return true
	}
	return auth != nil && auth.IsAdmin(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
