package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// ApprovalService evaluates the minimum-approval policy for one pull request
// and, after a review event, refreshes the stale pull_request check.
type ApprovalService struct {
	ghClient  driven.GitHubClient
	members   driven.MembershipChecker
	retrigger *RetriggerService
	required  int
}

// NewApprovalService creates a new ApprovalService. required is the number of
// member approvals an externally authored pull request needs.
func NewApprovalService(
	ghClient driven.GitHubClient,
	members driven.MembershipChecker,
	retrigger *RetriggerService,
	required int,
) *ApprovalService {
	return &ApprovalService{
		ghClient:  ghClient,
		members:   members,
		retrigger: retrigger,
		required:  required,
	}
}

// Evaluate runs the policy for pc. Stages run strictly in order and the first
// provider error stops the pipeline.
//
// A member-authored pull request passes without looking at reviews and
// without a re-trigger. Otherwise the decision is computed and, for review
// events, the re-trigger runs whatever the outcome. A re-trigger error is
// returned together with the decision that was already reached.
func (s *ApprovalService) Evaluate(ctx context.Context, pc model.PullRequestContext) (*model.Decision, error) {
	repoFullName := pc.RepoFullName()

	pr, err := s.ghClient.FetchPullRequest(ctx, repoFullName, pc.Number)
	if err != nil {
		return nil, err
	}

	members := NewMembershipCache(s.members)

	authorIsMember, err := members.IsMember(ctx, pr.Author)
	if err != nil {
		return nil, fmt.Errorf("checking membership of author %s: %w", pr.Author, err)
	}
	if authorIsMember {
		slog.Info("author is a member, skipping approval check",
			"repo", repoFullName,
			"pr_number", pc.Number,
			"author", pr.Author,
		)
		return &model.Decision{
			Author:         pr.Author,
			AuthorIsMember: true,
			Required:       s.required,
			Passed:         true,
		}, nil
	}

	reviews, err := s.ghClient.FetchReviews(ctx, repoFullName, pc.Number)
	if err != nil {
		return nil, err
	}

	approvals, err := ApprovedCount(ctx, reviews, members, pr.Author)
	if err != nil {
		return nil, err
	}

	decision := &model.Decision{
		Author:    pr.Author,
		Approvals: approvals,
		Required:  s.required,
		Passed:    approvals >= s.required,
	}

	slog.Info("approval check complete",
		"repo", repoFullName,
		"pr_number", pc.Number,
		"author", pr.Author,
		"reviews", len(reviews),
		"approvals", approvals,
		"required", s.required,
		"passed", decision.Passed,
	)

	if pc.Event != model.EventPullRequestReview {
		return decision, nil
	}

	if _, err := s.retrigger.RetriggerFailedCheck(ctx, pc); err != nil {
		return decision, fmt.Errorf("re-triggering failed check: %w", err)
	}

	return decision, nil
}
