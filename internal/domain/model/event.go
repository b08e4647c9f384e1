package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedEvent is returned when the action is triggered by an event it
// does not handle.
var ErrUnsupportedEvent = errors.New("unsupported event")

// EventKind is the GitHub event that triggered the invocation.
type EventKind string

const (
	EventPullRequest       EventKind = "pull_request"
	EventPullRequestReview EventKind = "pull_request_review"
)

// SupportedEvents lists every EventKind the action handles, in display order.
var SupportedEvents = []EventKind{EventPullRequest, EventPullRequestReview}

// ParseEventKind validates a raw GitHub event name.
func ParseEventKind(name string) (EventKind, error) {
	for _, kind := range SupportedEvents {
		if string(kind) == name {
			return kind, nil
		}
	}

	supported := make([]string, 0, len(SupportedEvents))
	for _, kind := range SupportedEvents {
		supported = append(supported, string(kind))
	}
	return "", fmt.Errorf("%w %q: expected one of %s", ErrUnsupportedEvent, name, strings.Join(supported, ", "))
}
