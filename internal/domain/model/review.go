package model

import "time"

// Review represents a review submitted on a pull request.
type Review struct {
	ID            int64
	ReviewerLogin string
	State         ReviewState
	CommitID      string // SHA of the commit this review targets.
	SubmittedAt   time.Time
}
