package actions

import (
	"fmt"

	"github.com/sethvargo/go-githubactions"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

// stepSummaryEnv names the file the runner renders as the job summary.
const stepSummaryEnv = "GITHUB_STEP_SUMMARY"

// Reporter writes results using GitHub Actions workflow commands. A failed
// check is an ::error:: line plus a non-zero exit status chosen by the caller.
type Reporter struct {
	action *githubactions.Action
}

// NewReporter creates a Reporter issuing commands through action.
func NewReporter(action *githubactions.Action) *Reporter {
	return &Reporter{action: action}
}

// Fail emits an error annotation with msg.
func (r *Reporter) Fail(msg string) {
	r.action.Errorf("%s", msg)
}

// Summarize appends a one-line markdown summary of the decision to the step
// summary file, when the runner provides one.
func (r *Reporter) Summarize(d *model.Decision) {
	if r.action.Getenv(stepSummaryEnv) == "" {
		return
	}

	var line string
	switch {
	case d.AuthorIsMember:
		line = fmt.Sprintf(":white_check_mark: Author `%s` is a member; no internal approvals required.", d.Author)
	case d.Passed:
		line = fmt.Sprintf(":white_check_mark: This pull request has %d of %d required internal approvals.", d.Approvals, d.Required)
	default:
		line = ":x: " + d.Message()
	}

	r.action.AddStepSummary(line)
}
