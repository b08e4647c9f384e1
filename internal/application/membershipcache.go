package application

import (
	"context"
	"sync"

	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MembershipChecker = (*MembershipCache)(nil)

// MembershipCache memoizes answers from another MembershipChecker. A reviewer
// usually appears several times in one review history; only the first lookup
// reaches the underlying checker. Errors are not cached.
//
// A cache is meant to live for a single evaluation, so membership changes
// made while it is alive are not observed.
type MembershipCache struct {
	mu      sync.Mutex
	next    driven.MembershipChecker
	answers map[string]bool
}

// NewMembershipCache wraps next.
func NewMembershipCache(next driven.MembershipChecker) *MembershipCache {
	return &MembershipCache{
		next:    next,
		answers: make(map[string]bool),
	}
}

// IsMember implements driven.MembershipChecker.
func (c *MembershipCache) IsMember(ctx context.Context, login string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ok, cached := c.answers[login]; cached {
		return ok, nil
	}

	ok, err := c.next.IsMember(ctx, login)
	if err != nil {
		return false, err
	}
	c.answers[login] = ok
	return ok, nil
}
