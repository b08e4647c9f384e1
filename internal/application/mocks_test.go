package application

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

// --- Mock implementations ---

type MockGitHubClient struct {
	mock.Mock
}

func (m *MockGitHubClient) FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error) {
	args := m.Called(ctx, repoFullName, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PullRequest), args.Error(1)
}

func (m *MockGitHubClient) FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error) {
	args := m.Called(ctx, repoFullName, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockGitHubClient) FetchWorkflowRun(ctx context.Context, repoFullName string, runID int64) (*model.WorkflowRun, error) {
	args := m.Called(ctx, repoFullName, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkflowRun), args.Error(1)
}

func (m *MockGitHubClient) FetchWorkflowRuns(ctx context.Context, repoFullName string, workflowID int64, filter model.WorkflowRunFilter) ([]model.WorkflowRun, error) {
	args := m.Called(ctx, repoFullName, workflowID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkflowRun), args.Error(1)
}

func (m *MockGitHubClient) RerunWorkflowRun(ctx context.Context, repoFullName string, runID int64) error {
	args := m.Called(ctx, repoFullName, runID)
	return args.Error(0)
}

// stubMembers is a map-backed MembershipChecker that counts lookups per login.
type stubMembers struct {
	members map[string]bool
	failFor string
	calls   map[string]int
}

func newStubMembers(logins ...string) *stubMembers {
	s := &stubMembers{
		members: make(map[string]bool, len(logins)),
		calls:   make(map[string]int),
	}
	for _, l := range logins {
		s.members[l] = true
	}
	return s
}

var errMembershipUnavailable = errors.New("membership service unavailable")

func (s *stubMembers) IsMember(_ context.Context, login string) (bool, error) {
	s.calls[login]++
	if login == s.failFor {
		return false, errMembershipUnavailable
	}
	return s.members[login], nil
}

func (s *stubMembers) totalCalls() int {
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}
