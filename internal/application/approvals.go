// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"slices"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// ReconcileReviewerStates folds a pull request's review history into one
// terminal state per trusted reviewer.
//
// Reviews are processed oldest first (stable, so equal timestamps keep the
// provider's order; a zero SubmittedAt sorts first). Reviews by the author and
// by non-members are ignored. A later review replaces an earlier one, except
// that a comment never replaces an approval. A later change request does.
func ReconcileReviewerStates(ctx context.Context, reviews []model.Review, members driven.MembershipChecker, author string) (map[string]model.ReviewState, error) {
	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b model.Review) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	states := make(map[string]model.ReviewState)

	for _, r := range sorted {
		if r.ReviewerLogin == author {
			continue
		}

		isMember, err := members.IsMember(ctx, r.ReviewerLogin)
		if err != nil {
			return nil, fmt.Errorf("checking membership of reviewer %s: %w", r.ReviewerLogin, err)
		}
		if !isMember {
			continue
		}

		current, seen := states[r.ReviewerLogin]
		switch {
		case !seen:
			states[r.ReviewerLogin] = r.State
		case current != model.ReviewStateApproved:
			states[r.ReviewerLogin] = r.State
		case r.State != model.ReviewStateCommented:
			states[r.ReviewerLogin] = r.State
		}
	}

	return states, nil
}

// ApprovedCount returns the number of trusted reviewers whose terminal state
// is an approval.
func ApprovedCount(ctx context.Context, reviews []model.Review, members driven.MembershipChecker, author string) (int, error) {
	states, err := ReconcileReviewerStates(ctx, reviews, members, author)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, state := range states {
		if state == model.ReviewStateApproved {
			count++
		}
	}
	return count, nil
}
