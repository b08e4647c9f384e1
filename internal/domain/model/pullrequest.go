package model

// PullRequest holds the pull request facts the approval policy needs.
type PullRequest struct {
	Number  int
	Author  string
	Status  PRStatus
	Branch  string // Head ref.
	HeadSHA string
}
