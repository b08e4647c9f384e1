package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		name string
		want model.EventKind
	}{
		{name: "pull_request", want: model.EventPullRequest},
		{name: "pull_request_review", want: model.EventPullRequestReview},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := model.ParseEventKind(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestParseEventKind_Unsupported(t *testing.T) {
	_, err := model.ParseEventKind("push")

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnsupportedEvent))
	assert.Contains(t, err.Error(), `"push"`)
	assert.Contains(t, err.Error(), "pull_request, pull_request_review")
}

func TestDecisionMessage(t *testing.T) {
	failed := model.Decision{Approvals: 0, Required: 2}
	assert.Equal(t, "This pull request has 0 of 2 required internal approvals.", failed.Message())

	passed := model.Decision{Approvals: 2, Required: 2, Passed: true}
	assert.Empty(t, passed.Message())
}

func TestWorkflowRunHasPullRequest(t *testing.T) {
	run := model.WorkflowRun{ID: 1, PullRequestNumbers: []int{3, 7}}

	assert.True(t, run.HasPullRequest(7))
	assert.False(t, run.HasPullRequest(8))
	assert.False(t, model.WorkflowRun{}.HasPullRequest(0))
}

func TestPullRequestContextRepoFullName(t *testing.T) {
	pc := model.PullRequestContext{Owner: "acme", Repo: "widgets"}
	assert.Equal(t, "acme/widgets", pc.RepoFullName())
}
