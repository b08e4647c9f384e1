package application

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// RetriggerService re-runs a stale failing pull_request check after a review
// is submitted.
//
// GitHub tracks the pull_request and pull_request_review runs of the same
// workflow as separate checks. A review that satisfies the policy only updates
// the review-triggered check, so an earlier failing pull_request run would
// keep the pull request red until it is re-run.
type RetriggerService struct {
	ghClient driven.GitHubClient
}

// NewRetriggerService creates a new RetriggerService.
func NewRetriggerService(ghClient driven.GitHubClient) *RetriggerService {
	return &RetriggerService{ghClient: ghClient}
}

// RetriggerFailedCheck finds the failed pull_request runs of the current
// workflow for pc's pull request and re-runs the one with the smallest run ID.
// It returns the ID of the re-run, or 0 when there was nothing to re-run.
//
// Only pull_request runs are considered. Re-running a pull_request_review run
// would trigger this service again.
func (s *RetriggerService) RetriggerFailedCheck(ctx context.Context, pc model.PullRequestContext) (int64, error) {
	repoFullName := pc.RepoFullName()

	workflowID := pc.WorkflowID
	if workflowID == 0 {
		run, err := s.ghClient.FetchWorkflowRun(ctx, repoFullName, pc.RunID)
		if err != nil {
			return 0, fmt.Errorf("resolving workflow of run %d: %w", pc.RunID, err)
		}
		workflowID = run.WorkflowID
	}

	runs, err := s.ghClient.FetchWorkflowRuns(ctx, repoFullName, workflowID, model.WorkflowRunFilter{
		Event:  string(model.EventPullRequest),
		Branch: pc.Branch,
		Status: model.RunStatusFailure,
	})
	if err != nil {
		return 0, err
	}

	candidates := make([]model.WorkflowRun, 0, len(runs))
	for _, run := range runs {
		if run.HasPullRequest(pc.Number) {
			candidates = append(candidates, run)
		}
	}

	if len(candidates) == 0 {
		slog.Debug("no failed pull_request run to re-run",
			"repo", repoFullName,
			"pr_number", pc.Number,
			"workflow_id", workflowID,
			"failed_runs", len(runs),
		)
		return 0, nil
	}

	// TODO: smallest ID is the oldest run; confirm whether the newest failed
	// run should be re-run instead and sort by CreatedAt descending if so.
	slices.SortFunc(candidates, func(a, b model.WorkflowRun) int {
		return cmp.Compare(a.ID, b.ID)
	})
	target := candidates[0]

	if err := s.ghClient.RerunWorkflowRun(ctx, repoFullName, target.ID); err != nil {
		return 0, err
	}

	slog.Info("re-ran failed pull_request check",
		"repo", repoFullName,
		"pr_number", pc.Number,
		"run_id", target.ID,
		"workflow_id", workflowID,
	)
	return target.ID, nil
}
