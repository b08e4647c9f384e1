package driven

import (
	"context"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

// GitHubClient defines the driven port for interacting with the GitHub API.
// Implementations drain pagination before returning and are expected to retry
// transient failures themselves; an error means the call failed for good.
type GitHubClient interface {
	// Pull requests and reviews

	FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error)
	FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error)

	// Workflow runs

	// FetchWorkflowRun returns a single run, used to resolve the workflow ID of
	// the current run.
	FetchWorkflowRun(ctx context.Context, repoFullName string, runID int64) (*model.WorkflowRun, error)
	// FetchWorkflowRuns lists every run of a workflow matching the filter.
	FetchWorkflowRuns(ctx context.Context, repoFullName string, workflowID int64, filter model.WorkflowRunFilter) ([]model.WorkflowRun, error)
	// RerunWorkflowRun re-runs every job of the given run.
	RerunWorkflowRun(ctx context.Context, repoFullName string, runID int64) error
}
