// Package github implements the GitHubClient and MembershipChecker ports using
// the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// defaultAPIURL is the public GitHub REST endpoint; anything else is treated
// as a GitHub Enterprise Server base URL.
const defaultAPIURL = "https://api.github.com"

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client. Requests flow through:
//  1. go-github (GitHub REST API client with token auth)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. httpcache (ETag-based conditional request caching)
//  4. retryTransport (up to 3 attempts on transport errors and 5xx)
//
// apiURL may be empty; when it differs from the public API the client targets
// that host instead (GitHub Enterprise Server).
func NewClient(token, apiURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = newRetryTransport(http.DefaultTransport, defaultMaxAttempts)
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultAPIURL {
		u, err := parseBaseURL(apiURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Client{gh: client}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// parseBaseURL parses a REST base URL, adding the trailing slash go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u, nil
}

// FetchPullRequest returns the metadata of a single pull request.
func (c *Client) FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s#%d: %w", repoFullName, prNumber, err)
	}

	logRateLimit(resp, repoFullName+"/pull", 0, 1)

	mapped := mapPullRequest(pr)
	return &mapped, nil
}

// FetchReviews retrieves all reviews for a pull request.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchReviews(ctx context.Context, repoFullName string, prNumber int) ([]model.Review, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: 100}
	var allReviews []model.Review

	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/reviews", opts.Page, len(reviews))

		for _, r := range reviews {
			allReviews = append(allReviews, mapReview(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allReviews == nil {
		allReviews = []model.Review{}
	}

	return allReviews, nil
}

// FetchWorkflowRun returns a single workflow run by ID.
func (c *Client) FetchWorkflowRun(ctx context.Context, repoFullName string, runID int64) (*model.WorkflowRun, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	run, resp, err := c.gh.Actions.GetWorkflowRunByID(ctx, owner, repo, runID)
	if err != nil {
		return nil, fmt.Errorf("fetching workflow run %d for %s: %w", runID, repoFullName, err)
	}

	logRateLimit(resp, repoFullName+"/run", 0, 1)

	mapped := mapWorkflowRun(run)
	return &mapped, nil
}

// FetchWorkflowRuns lists all runs of a workflow that match the filter.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchWorkflowRuns(ctx context.Context, repoFullName string, workflowID int64, filter model.WorkflowRunFilter) ([]model.WorkflowRun, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListWorkflowRunsOptions{
		Event:  filter.Event,
		Branch: filter.Branch,
		Status: filter.Status,
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var allRuns []model.WorkflowRun

	for {
		runs, resp, err := c.gh.Actions.ListWorkflowRunsByID(ctx, owner, repo, workflowID, opts)
		if err != nil {
			return nil, fmt.Errorf("listing runs of workflow %d for %s (page %d): %w", workflowID, repoFullName, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/runs", opts.Page, len(runs.WorkflowRuns))

		for _, run := range runs.WorkflowRuns {
			allRuns = append(allRuns, mapWorkflowRun(run))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allRuns == nil {
		allRuns = []model.WorkflowRun{}
	}

	return allRuns, nil
}

// RerunWorkflowRun re-runs the given workflow run.
func (c *Client) RerunWorkflowRun(ctx context.Context, repoFullName string, runID int64) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	resp, err := c.gh.Actions.RerunWorkflowByID(ctx, owner, repo, runID)
	if err != nil {
		return fmt.Errorf("re-running workflow run %d for %s: %w", runID, repoFullName, err)
	}

	logRateLimit(resp, repoFullName+"/rerun", 0, 1)
	return nil
}

// mapReview converts a go-github PullRequestReview to a domain model Review.
// GitHub reports states in upper case; the domain model uses lower case.
func mapReview(r *gh.PullRequestReview) model.Review {
	return model.Review{
		ID:            r.GetID(),
		ReviewerLogin: r.GetUser().GetLogin(),
		State:         model.ReviewState(strings.ToLower(r.GetState())),
		CommitID:      r.GetCommitID(),
		SubmittedAt:   r.GetSubmittedAt().Time,
	}
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest) model.PullRequest {
	status := model.PRStatusOpen
	if !pr.GetMergedAt().IsZero() {
		status = model.PRStatusMerged
	} else if pr.GetState() == "closed" {
		status = model.PRStatusClosed
	}

	return model.PullRequest{
		Number:  pr.GetNumber(),
		Author:  pr.GetUser().GetLogin(),
		Status:  status,
		Branch:  pr.GetHead().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
	}
}

// mapWorkflowRun converts a go-github WorkflowRun to a domain model WorkflowRun.
func mapWorkflowRun(run *gh.WorkflowRun) model.WorkflowRun {
	numbers := make([]int, 0, len(run.PullRequests))
	for _, pr := range run.PullRequests {
		numbers = append(numbers, pr.GetNumber())
	}

	return model.WorkflowRun{
		ID:                 run.GetID(),
		WorkflowID:         run.GetWorkflowID(),
		Event:              run.GetEvent(),
		Status:             run.GetStatus(),
		Conclusion:         run.GetConclusion(),
		HeadBranch:         run.GetHeadBranch(),
		PullRequestNumbers: numbers,
		CreatedAt:          run.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
