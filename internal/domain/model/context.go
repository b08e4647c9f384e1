package model

// PullRequestContext carries the immutable facts of one invocation. It is
// passed by value and never mutated after construction.
type PullRequestContext struct {
	Owner      string
	Repo       string
	Number     int
	Branch     string // Head branch of the pull request.
	Event      EventKind
	RunID      int64 // Current workflow run; set for review events.
	WorkflowID int64 // Zero until resolved from RunID.
}

// RepoFullName returns "owner/repo".
func (c PullRequestContext) RepoFullName() string {
	return c.Owner + "/" + c.Repo
}
