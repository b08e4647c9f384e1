package model

import "fmt"

// Decision is the outcome of evaluating the approval policy for one pull
// request.
type Decision struct {
	Author         string
	AuthorIsMember bool // Policy skipped: member-authored pull requests always pass.
	Approvals      int
	Required       int
	Passed         bool
}

// Message returns the failure text reported on the status check, or an empty
// string when the decision passed. Downstream tooling parses this sentence, so
// its wording must not change.
func (d Decision) Message() string {
	if d.Passed {
		return ""
	}
	return fmt.Sprintf("This pull request has %d of %d required internal approvals.", d.Approvals, d.Required)
}
