package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-githubactions"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/multiapprovers/internal/adapter/driven/github"
	"github.com/ericfisherdev/multiapprovers/internal/adapter/driven/roster"
	"github.com/ericfisherdev/multiapprovers/internal/adapter/driving/actions"
	"github.com/ericfisherdev/multiapprovers/internal/application"
	"github.com/ericfisherdev/multiapprovers/internal/config"
	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// failureBanner prefixes every infrastructure error.
const failureBanner = "Multi-approvers action failed: "

// evaluator runs the approval policy for one pull request.
type evaluator interface {
	Evaluate(ctx context.Context, pc model.PullRequestContext) (*model.Decision, error)
}

func main() {
	os.Exit(run(githubactions.New()))
}

// run executes one invocation and returns the process exit code. Every error
// is reported exactly once.
func run(action *githubactions.Action) int {
	reporter := actions.NewReporter(action)

	// 1. Load configuration (fail fast, listing every missing input).
	cfg, err := config.Load(action)
	if err != nil {
		reporter.Fail(failureBanner + err.Error())
		return 1
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(actions.NewLogHandler(action, level)))

	slog.Debug("config loaded",
		"repo", cfg.Owner+"/"+cfg.Repo,
		"event", cfg.Event,
		"run_id", cfg.RunID,
		"required_approvals", cfg.RequiredApprovals,
		"roster", cfg.UsesRoster(),
		"org", cfg.Org,
		"team", cfg.Team,
	)

	// 2. Setup signal-based context with the overall deadline.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// 3. Decode the triggering event.
	pc, err := actions.ReadPullRequestContext(cfg.EventPath, cfg.Event, cfg.Owner, cfg.Repo, cfg.RunID)
	if err != nil {
		reporter.Fail(failureBanner + err.Error())
		return 1
	}

	// 4. Wire adapters.
	ghClient, err := githubadapter.NewClient(cfg.Token, cfg.APIURL)
	if err != nil {
		reporter.Fail(failureBanner + err.Error())
		return 1
	}

	var members driven.MembershipChecker
	if cfg.UsesRoster() {
		r := roster.New(cfg.Members)
		slog.Debug("using static roster", "members", r.Len())
		members = r
	} else {
		members = githubadapter.NewTeamMembership(ghClient, cfg.Org, cfg.Team)
	}

	svc := application.NewApprovalService(
		ghClient,
		members,
		application.NewRetriggerService(ghClient),
		cfg.RequiredApprovals,
	)

	// 5. Evaluate and report.
	return evaluate(ctx, svc, pc, reporter)
}

// evaluate runs svc for pc, reports the outcome and returns the exit code. A
// decision and an error can both be present when the re-trigger fails after
// the policy was decided; both are reported.
func evaluate(ctx context.Context, svc evaluator, pc model.PullRequestContext, reporter *actions.Reporter) int {
	decision, err := svc.Evaluate(ctx, pc)

	code := 0
	if decision != nil {
		reporter.Summarize(decision)
		if !decision.Passed {
			reporter.Fail(decision.Message())
			code = 1
		}
	}
	if err != nil {
		reporter.Fail(failureBanner + err.Error())
		code = 1
	}

	return code
}
