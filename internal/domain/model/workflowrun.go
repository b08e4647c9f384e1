package model

import (
	"slices"
	"time"
)

// RunStatusFailure is the workflow run status filter for runs that concluded
// with a failure.
const RunStatusFailure = "failure"

// WorkflowRun is a GitHub Actions workflow run, reduced to what is needed to
// find and re-run a stale failing check.
type WorkflowRun struct {
	ID                 int64
	WorkflowID         int64
	Event              string // Triggering event name, e.g. "pull_request".
	Status             string // queued, in_progress, completed.
	Conclusion         string // success, failure, cancelled, ...
	HeadBranch         string
	PullRequestNumbers []int
	CreatedAt          time.Time
}

// HasPullRequest reports whether the run is associated with the given pull
// request number.
func (r WorkflowRun) HasPullRequest(number int) bool {
	return slices.Contains(r.PullRequestNumbers, number)
}

// WorkflowRunFilter narrows a workflow run listing. Empty fields are not sent.
type WorkflowRunFilter struct {
	Event  string
	Branch string
	Status string
}
