package actions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

const pullRequestPayload = `{
	"action": "synchronize",
	"number": 42,
	"pull_request": {
		"number": 42,
		"user": {"login": "wile-e-coyote"},
		"head": {"ref": "feature-x", "sha": "abc123"}
	}
}`

const reviewPayload = `{
	"action": "submitted",
	"review": {"id": 1, "state": "approved", "user": {"login": "road-runner"}},
	"pull_request": {
		"number": 42,
		"user": {"login": "wile-e-coyote"},
		"head": {"ref": "feature-x", "sha": "abc123"}
	}
}`

func TestParsePullRequestContext(t *testing.T) {
	tests := []struct {
		name    string
		kind    model.EventKind
		payload string
	}{
		{name: "pull_request", kind: model.EventPullRequest, payload: pullRequestPayload},
		{name: "pull_request_review", kind: model.EventPullRequestReview, payload: reviewPayload},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pc, err := ParsePullRequestContext([]byte(tc.payload), tc.kind, "acme", "widgets", 999)

			require.NoError(t, err)
			assert.Equal(t, model.PullRequestContext{
				Owner:  "acme",
				Repo:   "widgets",
				Number: 42,
				Branch: "feature-x",
				Event:  tc.kind,
				RunID:  999,
			}, pc)
		})
	}
}

func TestParsePullRequestContext_NoPullRequest(t *testing.T) {
	_, err := ParsePullRequestContext([]byte(`{"action":"opened"}`), model.EventPullRequest, "acme", "widgets", 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPullRequest))
}

func TestParsePullRequestContext_Malformed(t *testing.T) {
	_, err := ParsePullRequestContext([]byte(`{not json`), model.EventPullRequest, "acme", "widgets", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding pull_request event payload")
}

func TestReadPullRequestContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(reviewPayload), 0o600))

	pc, err := ReadPullRequestContext(path, model.EventPullRequestReview, "acme", "widgets", 5)

	require.NoError(t, err)
	assert.Equal(t, 42, pc.Number)
	assert.Equal(t, int64(5), pc.RunID)
}

func TestReadPullRequestContext_MissingFile(t *testing.T) {
	_, err := ReadPullRequestContext(filepath.Join(t.TempDir(), "missing.json"), model.EventPullRequest, "acme", "widgets", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading event payload")
}
