// Package config loads action configuration from the GitHub Actions runner
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sethvargo/go-githubactions"

	"github.com/ericfisherdev/multiapprovers/internal/domain/model"
)

// inputNames lists the inputs declared in action.yml.
var inputNames = []string{"token", "team", "members", "org", "required-approvals", "timeout"}

// Inputs holds the action inputs declared in action.yml.
type Inputs struct {
	Token             string        `mapstructure:"token"`
	Team              string        `mapstructure:"team"`
	Members           string        `mapstructure:"members"`
	Org               string        `mapstructure:"org"`
	RequiredApprovals int           `mapstructure:"required-approvals"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// Config holds the validated configuration for one invocation.
type Config struct {
	Token             string
	Team              string
	Members           []string // Static roster; takes precedence over Team when non-empty.
	Org               string
	RequiredApprovals int
	Timeout           time.Duration

	Event           model.EventKind
	EventPath       string
	Owner           string
	Repo            string
	RunID           int64
	APIURL          string
	StepSummaryPath string
	Debug           bool
}

// UsesRoster reports whether membership comes from the static roster rather
// than a team query.
func (c *Config) UsesRoster() bool {
	return len(c.Members) > 0
}

// Load reads the action inputs and runner variables through action and returns
// a validated Config. Every missing required value is reported in a single
// error, together with any malformed values. An optional .env file in the
// working directory is loaded first for runs outside a runner; it never
// overrides set variables.
//
// Defaults: INPUT_REQUIRED-APPROVALS (2), INPUT_TIMEOUT (5m), INPUT_ORG
// (repository owner).
func Load(action *githubactions.Action) (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("loading .env: %w", err))
	}

	inputs := Inputs{
		RequiredApprovals: 2,
		Timeout:           5 * time.Minute,
	}

	if err := decodeInputs(collectInputs(action), &inputs); err != nil {
		errs = append(errs, err)
	}

	cfg := &Config{
		Token:             inputs.Token,
		Team:              strings.TrimSpace(inputs.Team),
		Members:           splitLogins(inputs.Members),
		Org:               strings.TrimSpace(inputs.Org),
		RequiredApprovals: inputs.RequiredApprovals,
		Timeout:           inputs.Timeout,
		EventPath:         action.Getenv("GITHUB_EVENT_PATH"),
		APIURL:            action.Getenv("GITHUB_API_URL"),
		StepSummaryPath:   action.Getenv("GITHUB_STEP_SUMMARY"),
		Debug:             action.Getenv("RUNNER_DEBUG") == "1",
	}

	var missing []string
	if cfg.Token == "" {
		missing = append(missing, "INPUT_TOKEN")
	}
	if cfg.Team == "" && len(cfg.Members) == 0 {
		missing = append(missing, "INPUT_TEAM or INPUT_MEMBERS")
	}

	eventName := action.Getenv("GITHUB_EVENT_NAME")
	if eventName == "" {
		missing = append(missing, "GITHUB_EVENT_NAME")
	}
	if cfg.EventPath == "" {
		missing = append(missing, "GITHUB_EVENT_PATH")
	}

	repository := action.Getenv("GITHUB_REPOSITORY")
	if repository == "" {
		missing = append(missing, "GITHUB_REPOSITORY")
	}

	runID := action.Getenv("GITHUB_RUN_ID")
	if runID == "" && eventName == string(model.EventPullRequestReview) {
		missing = append(missing, "GITHUB_RUN_ID")
	}

	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required inputs: %s", strings.Join(missing, ", ")))
	}

	if eventName != "" {
		kind, err := model.ParseEventKind(eventName)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.Event = kind
	}

	if repository != "" {
		owner, repo, ok := strings.Cut(repository, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			errs = append(errs, fmt.Errorf("GITHUB_REPOSITORY has invalid value %q: expected owner/repo", repository))
		}
		cfg.Owner = owner
		cfg.Repo = repo
	}

	if runID != "" {
		parsed, err := strconv.ParseInt(runID, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("GITHUB_RUN_ID has invalid value %q: %w", runID, err))
		}
		cfg.RunID = parsed
	}

	if cfg.RequiredApprovals < 1 {
		errs = append(errs, fmt.Errorf("INPUT_REQUIRED-APPROVALS must be at least 1, got %d", cfg.RequiredApprovals))
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("INPUT_TIMEOUT must be positive, got %s", cfg.Timeout))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cfg.Org == "" {
		cfg.Org = cfg.Owner
	}

	return cfg, nil
}

// collectInputs gathers the declared inputs into a map keyed by input name.
// Empty values are dropped so defaults survive: the runner exports every
// declared input, set or not.
func collectInputs(action *githubactions.Action) map[string]any {
	raw := make(map[string]any)
	for _, name := range inputNames {
		if value := action.GetInput(name); value != "" {
			raw[name] = value
		}
	}
	return raw
}

// decodeInputs decodes raw string inputs into out, converting numbers and
// durations.
func decodeInputs(raw map[string]any, out *Inputs) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating input decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decoding action inputs: %w", err)
	}
	return nil
}

// splitLogins splits a comma or newline separated list of logins, dropping
// blanks.
func splitLogins(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	var logins []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			logins = append(logins, f)
		}
	}
	return logins
}
