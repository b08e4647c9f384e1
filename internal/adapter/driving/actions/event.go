// Package actions adapts the GitHub Actions runner: it turns the event
// payload into a PullRequestContext and reports outcomes with workflow
// commands.
package actions

import (
	"errors"
	"fmt"
	"os"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

// ErrNoPullRequest is returned when the event payload carries no pull request.
var ErrNoPullRequest = errors.New("event payload has no pull request")

// ReadPullRequestContext decodes the event payload at eventPath and combines
// it with the runner's repository and run identity.
func ReadPullRequestContext(eventPath string, kind model.EventKind, owner, repo string, runID int64) (model.PullRequestContext, error) {
	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return model.PullRequestContext{}, fmt.Errorf("reading event payload: %w", err)
	}
	return ParsePullRequestContext(payload, kind, owner, repo, runID)
}

// ParsePullRequestContext is ReadPullRequestContext for an in-memory payload.
func ParsePullRequestContext(payload []byte, kind model.EventKind, owner, repo string, runID int64) (model.PullRequestContext, error) {
	event, err := gh.ParseWebHook(string(kind), payload)
	if err != nil {
		return model.PullRequestContext{}, fmt.Errorf("decoding %s event payload: %w", kind, err)
	}

	var pr *gh.PullRequest
	switch e := event.(type) {
	case *gh.PullRequestEvent:
		pr = e.GetPullRequest()
	case *gh.PullRequestReviewEvent:
		pr = e.GetPullRequest()
	default:
		return model.PullRequestContext{}, fmt.Errorf("%w %q", model.ErrUnsupportedEvent, kind)
	}

	if pr.GetNumber() == 0 {
		return model.PullRequestContext{}, ErrNoPullRequest
	}

	return model.PullRequestContext{
		Owner:  owner,
		Repo:   repo,
		Number: pr.GetNumber(),
		Branch: pr.GetHead().GetRef(),
		Event:  kind,
		RunID:  runID,
	}, nil
}
